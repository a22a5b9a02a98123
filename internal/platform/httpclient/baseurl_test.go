package httpclient

import "testing"

func TestResolveBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		origin string
		want   string
	}{
		{"empty falls back to /api on default origin", "", "", "http://localhost/api"},
		{"empty base with explicit origin", "", "http://localhost:8080", "http://localhost:8080/api"},
		{"absolute http base kept", "http://api.example.com/v1", "http://ignored", "http://api.example.com/v1"},
		{"absolute https base kept", "https://api.example.com", "", "https://api.example.com"},
		{"relative base resolved against origin", "/api", "https://admin.example.com", "https://admin.example.com/api"},
		{"relative base without leading slash", "api", "http://localhost:3000", "http://localhost:3000/api"},
		{"trailing slash stripped", "http://api.example.com/v1/", "", "http://api.example.com/v1"},
		{"origin trailing slash handled", "/api", "http://localhost:8080/", "http://localhost:8080/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveBaseURL(tt.base, tt.origin); got != tt.want {
				t.Errorf("ResolveBaseURL(%q, %q) = %q, want %q", tt.base, tt.origin, got, tt.want)
			}
		})
	}
}
