package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxErrorBody = 1 << 20 // 1MB cap on error payloads

// parseRateHeaders extracts the GitHub rate-limit trio. Missing or
// malformed headers come back as -1 / zero time
func parseRateHeaders(h http.Header) (remaining int, reset time.Time, retryAfter int) {
	remaining = -1
	retryAfter = -1
	if v := h.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			reset = time.Unix(n, 0).UTC()
		}
	}
	if v := h.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			retryAfter = n
		}
	}
	return remaining, reset, retryAfter
}

// readErrorMessage drains a non-2xx response body and pulls the upstream
// "message" field if the payload is JSON; otherwise it falls back to a
// generic status line
func readErrorMessage(resp *http.Response) string {
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(body) > 0 {
		var doc struct {
			Message string `json:"message"`
		}
		if jerr := json.Unmarshal(body, &doc); jerr == nil && strings.TrimSpace(doc.Message) != "" {
			return doc.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}

// decodeJSON decodes a 2xx response body into out and always closes it
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close() // nolint:errcheck
	return json.NewDecoder(resp.Body).Decode(out)
}
