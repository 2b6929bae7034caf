package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-200 reply from a provider API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// errorMessageFunc pulls the human-readable message out of an error body, or returns ""
type errorMessageFunc func(body []byte) string

// jsonEndpoint is one JSON-over-HTTP provider endpoint
type jsonEndpoint struct {
	provider string
	client   *http.Client
	header   http.Header
	message  errorMessageFunc
}

// post marshals payload, sends it to rawURL and decodes a 200 reply into out
func (e jsonEndpoint) post(ctx context.Context, rawURL string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", redactURLError(err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range e.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", e.provider, redactURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := ""
		if e.message != nil {
			msg = e.message(respBody)
		}
		if msg == "" {
			msg = string(respBody)
		}
		return &APIError{Provider: e.provider, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
