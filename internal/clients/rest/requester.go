// Package rest implements the typed resource clients for the planning API
// (projects, venues, mission templates, mission tags) on top of the
// transport client. The clients are thin: path construction and method
// selection only, no business logic and no error translation beyond the
// uniform status mapping in the Requester.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/plannery/plannery-go/internal/domain"
	"github.com/plannery/plannery-go/internal/platform/httpclient"
)

// Requester centralizes the HTTP request lifecycle for resource clients:
// request creation, JSON marshaling, execution via httpclient.Client,
// response body handling, status mapping, and JSON decoding.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given transport client.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// BaseURL returns the base URL from the underlying transport client.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

// Do executes an HTTP request against the configured base URL.
//
// reqBody is JSON-marshaled when non-nil; a nil body sends no body at all.
// The response body is read in full, then decoded into respBody when both
// are non-empty; an empty body with a 2xx status is a valid empty result
// (DELETE). A malformed JSON body is a hard error — never coerced to nil.
//
// Any status >= 400 is returned as a *domain.APIError carrying the status,
// a message (the body's "detail" field when present, else the HTTP status
// text), and the raw parsed body.
func (r *Requester) Do(ctx context.Context, method, path string, reqBody, respBody any) error {
	url := r.client.BaseURL() + path

	var body io.Reader = http.NoBody
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer r.closeBody(ctx, resp)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode, raw)
		r.logger.ErrorContext(ctx, "server reported failure",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	if respBody != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, respBody); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
		}
	}

	return nil
}

// closeBody closes an HTTP response body and logs on failure.
func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// newAPIError builds the structured failure for a status >= 400 response.
// Message preference: the body's "detail" string, else the HTTP status
// text, else a generic message. The parsed body rides along for callers
// that want field-level details; a non-JSON body leaves it nil.
func newAPIError(status int, raw []byte) *domain.APIError {
	var parsed map[string]any
	if len(raw) > 0 {
		// Best effort: error bodies are JSON by contract but a proxy may
		// hand back HTML; the status code alone still tells the story.
		_ = json.Unmarshal(raw, &parsed)
	}

	message := ""
	if detail, ok := parsed["detail"].(string); ok {
		message = detail
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "request failed"
	}

	return &domain.APIError{
		Status:  status,
		Message: message,
		Body:    parsed,
	}
}
