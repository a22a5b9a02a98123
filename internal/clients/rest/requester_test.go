package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plannery/plannery-go/internal/domain"
	"github.com/plannery/plannery-go/internal/platform/config"
	"github.com/plannery/plannery-go/internal/platform/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestRequester(t *testing.T, handler http.HandlerFunc) *Requester {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := &config.APIConfig{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
	client := httpclient.New(cfg, "planning-api", nil, nil, testLogger())
	return NewRequester(client, testLogger())
}

func TestRequester_DecodesSuccess(t *testing.T) {
	t.Parallel()

	req := newTestRequester(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/projects" {
			t.Errorf("got %s %s, want GET /projects", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"id": "p1", "name": "Gala"}})
	})

	var out []domain.Project
	if err := req.Do(context.Background(), http.MethodGet, "/projects", nil, &out); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "p1" {
		t.Errorf("decoded = %+v, want one project p1", out)
	}
}

func TestRequester_MarshalsRequestBody(t *testing.T) {
	t.Parallel()

	req := newTestRequester(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if body["name"] != "Gala" {
			t.Errorf("body name = %v, want Gala", body["name"])
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "p1", "name": "Gala"})
	})

	var out domain.Project
	payload := domain.ProjectCreate{Name: "Gala"}
	if err := req.Do(context.Background(), http.MethodPost, "/projects", payload, &out); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if out.ID != "p1" {
		t.Errorf("decoded id = %q, want p1", out.ID)
	}
}

func TestRequester_EmptyBodyIsValidResult(t *testing.T) {
	t.Parallel()

	req := newTestRequester(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := req.Do(context.Background(), http.MethodDelete, "/projects/p1", nil, nil); err != nil {
		t.Errorf("Do() error = %v, want nil for empty 204", err)
	}
}

func TestRequester_ErrorStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantTarget  error
	}{
		{
			name:        "detail field preferred",
			status:      404,
			body:        `{"detail": "project not found"}`,
			wantMessage: "project not found",
			wantTarget:  domain.ErrNotFound,
		},
		{
			name:        "status text when no detail",
			status:      500,
			body:        `{"unexpected": "shape"}`,
			wantMessage: "Internal Server Error",
		},
		{
			name:        "non-JSON body still maps status",
			status:      422,
			body:        `<html>proxy error</html>`,
			wantMessage: "Unprocessable Entity",
			wantTarget:  domain.ErrValidation,
		},
		{
			name:        "empty body",
			status:      401,
			body:        "",
			wantMessage: "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := newTestRequester(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := req.Do(context.Background(), http.MethodGet, "/projects/p1", nil, nil)
			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Do() error = %v, want *domain.APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if tt.wantTarget != nil && !errors.Is(err, tt.wantTarget) {
				t.Errorf("errors.Is(%v) = false", tt.wantTarget)
			}
		})
	}
}

func TestRequester_MalformedSuccessBodyIsAnError(t *testing.T) {
	t.Parallel()

	req := newTestRequester(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"truncated": `))
	})

	var out domain.Project
	err := req.Do(context.Background(), http.MethodGet, "/projects/p1", nil, &out)
	if err == nil {
		t.Fatal("Do() error = nil, want decode failure (never coerced to empty)")
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("Do() error = %v, want a plain decode error, not APIError", err)
	}
}
