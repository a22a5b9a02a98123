package httpclient

import "strings"

// fallbackBasePath is used when no base URL is configured anywhere: requests
// go to the path-relative /api prefix on the configured origin.
const fallbackBasePath = "/api"

// fallbackOrigin is used when no origin is configured either. It mirrors the
// fixed origin the original client assumed outside a browser context.
const fallbackOrigin = "http://localhost"

// ResolveBaseURL normalizes the configured API base URL.
//
// Precedence is handled upstream by the config layers (explicit value →
// environment override → empty). Here: an empty base falls back to "/api";
// absolute bases (http/https) are kept; path-relative bases are resolved
// against origin. Trailing slashes are stripped so path joining stays
// predictable.
func ResolveBaseURL(base, origin string) string {
	if base == "" {
		base = fallbackBasePath
	}
	if origin == "" {
		origin = fallbackOrigin
	}

	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		if !strings.HasPrefix(base, "/") {
			base = "/" + base
		}
		base = strings.TrimRight(origin, "/") + base
	}

	return strings.TrimRight(base, "/")
}
