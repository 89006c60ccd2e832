package form

// Asset is one item returned by the image picker.
type Asset struct {
	URI      string `json:"uri"`
	FileName string `json:"fileName,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// PickResult is the image picker response.
type PickResult struct {
	DidCancel    bool    `json:"didCancel,omitempty"`
	ErrorCode    string  `json:"errorCode,omitempty"`
	ErrorMessage string  `json:"errorMessage,omitempty"`
	Assets       []Asset `json:"assets,omitempty"`
}

// SelectedURI returns the first asset URI of a clean pick.
func (p PickResult) SelectedURI() (string, bool) {
	if p.DidCancel || p.ErrorMessage != "" || p.ErrorCode != "" {
		return "", false
	}
	if len(p.Assets) == 0 || p.Assets[0].URI == "" {
		return "", false
	}
	return p.Assets[0].URI, true
}

// ApplyPick stores the picked image and reports whether the image changed.
func (f *Form) ApplyPick(p PickResult) bool {
	uri, ok := p.SelectedURI()
	if !ok {
		return false
	}
	f.SetImage(uri)
	return true
}
