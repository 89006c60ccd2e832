// Package imagesize reads pixel dimensions of images referenced by URI
// without decoding the full image.
package imagesize

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	ErrEmptyURI          = errors.New("empty uri")
)

// FileLookup reads images from the local filesystem. It accepts bare paths
// and file:// URIs.
type FileLookup struct{}

func (FileLookup) Dimensions(ctx context.Context, uri string) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	path, err := localPath(uri)
	if err != nil {
		return 0, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	return decodeSize(f)
}

// HTTPLookup fetches remote images over http(s).
type HTTPLookup struct {
	Client *http.Client
}

func (l HTTPLookup) Dimensions(ctx context.Context, uri string) (int, int, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build image request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, 0, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}
	return decodeSize(resp.Body)
}

// Resolver picks a lookup by URI scheme.
type Resolver struct {
	File FileLookup
	HTTP HTTPLookup
}

func NewResolver(client *http.Client) *Resolver {
	return &Resolver{HTTP: HTTPLookup{Client: client}}
}

func (r *Resolver) Dimensions(ctx context.Context, uri string) (int, int, error) {
	switch scheme(uri) {
	case "", "file":
		return r.File.Dimensions(ctx, uri)
	case "http", "https":
		return r.HTTP.Dimensions(ctx, uri)
	default:
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme(uri))
	}
}

func decodeSize(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func scheme(uri string) string {
	idx := strings.Index(uri, "://")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(uri[:idx])
}

func localPath(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", ErrEmptyURI
	}
	if scheme(uri) != "file" {
		return uri, nil
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse file uri: %w", err)
	}
	if parsed.Path == "" {
		return "", ErrEmptyURI
	}
	return parsed.Path, nil
}
