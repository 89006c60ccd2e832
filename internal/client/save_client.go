// Package client talks to the contractor save endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/contractor-form/internal/form"
	"github.com/nurpe/contractor-form/internal/model"
)

const SavePath = "/Contractor/Save"

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Transport overrides the default round tripper, mainly for tests.
	Transport http.RoundTripper
}

// SaveClient posts contractor records to the save endpoint. Each call is a
// single attempt.
type SaveClient struct {
	httpClient *http.Client
	saveURL    string
	token      string
	log        zerolog.Logger
}

func NewSaveClient(cfg Config, log zerolog.Logger) *SaveClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SaveClient{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		saveURL: strings.TrimRight(cfg.BaseURL, "/") + SavePath,
		token:   cfg.Token,
		log:     log,
	}
}

func (c *SaveClient) Save(ctx context.Context, data model.ContractorData) (form.SaveStatus, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return form.SaveFailed, fmt.Errorf("encode contractor: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.saveURL, bytes.NewReader(body))
	if err != nil {
		return form.SaveFailed, fmt.Errorf("build save request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return form.SaveFailed, fmt.Errorf("post %s: %w", c.saveURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.Debug().
		Str("url", c.saveURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("save request finished")

	return statusFromCode(resp.StatusCode), nil
}

func statusFromCode(code int) form.SaveStatus {
	switch code {
	case http.StatusOK:
		return form.SaveOK
	case http.StatusNotFound:
		return form.SaveNotFound
	default:
		return form.SaveFailed
	}
}
