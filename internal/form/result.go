package form

type OutcomeKind int

const (
	OutcomeSaved OutcomeKind = iota
	OutcomeInvalidIdentifier
	OutcomeInvalidImage
	OutcomeNotFound
	OutcomeError
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeSaved:             "saved",
	OutcomeInvalidIdentifier: "invalid_identifier",
	OutcomeInvalidImage:      "invalid_image",
	OutcomeNotFound:          "not_found",
	OutcomeError:             "error",
}

var outcomeMessages = map[OutcomeKind]string{
	OutcomeSaved:             "Zapisano",
	OutcomeInvalidIdentifier: "Nieprawidłowy numer identyfikacyjny",
	OutcomeInvalidImage:      "Nieprawidłowy format zdjęcia lub nieprawidłowe proporcje",
	OutcomeNotFound:          "Nie znaleziono metody zapisu",
	OutcomeError:             "Wystąpił błąd",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Result is the terminal outcome of one submit attempt.
type Result struct {
	Kind OutcomeKind
	// Err carries the transport failure behind OutcomeError, if any. It is
	// never shown to the user.
	Err error
}

func (r Result) Message() string {
	if msg, ok := outcomeMessages[r.Kind]; ok {
		return msg
	}
	return outcomeMessages[OutcomeError]
}

func (r Result) OK() bool {
	return r.Kind == OutcomeSaved
}

// Rejected reports a local validation failure. No save was attempted.
func (r Result) Rejected() bool {
	return r.Kind == OutcomeInvalidIdentifier || r.Kind == OutcomeInvalidImage
}

// Notifier shows a submit outcome to the user.
type Notifier interface {
	Notify(Result)
}

type NotifierFunc func(Result)

func (f NotifierFunc) Notify(r Result) {
	f(r)
}
