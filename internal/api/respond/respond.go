// Package respond writes the API's JSON bodies: cached documents with
// conditional GET, plain objects, and the shared error envelope.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-draw/internal/cache"
)

// Error codes used across handlers and middleware.
const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeDrawFailed  = "DRAW_FAILED"
	CodeInternal    = "INTERNAL_ERROR"
	CodeRateLimited = "RATE_LIMITED"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorResponse is the envelope around Error.
type ErrorResponse struct {
	Error Error `json:"error"`
}

// ErrorBody renders the envelope once so it can be cached and replayed.
func ErrorBody(code, message, detail string) []byte {
	data, _ := json.Marshal(ErrorResponse{Error: Error{Code: code, Message: message, Detail: detail}})
	return data
}

// Fail writes an error envelope with status.
func Fail(w http.ResponseWriter, status int, code, message, detail string) {
	FailBody(w, status, ErrorBody(code, message, detail))
}

// FailBody writes a pre-rendered error envelope.
func FailBody(w http.ResponseWriter, status int, body []byte) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	w.Write(body)
}

// JSON encodes v with status. Used for uncached bodies (root, health).
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Cached serves a rendered document. A matching If-None-Match gets a bare
// 304; otherwise the body goes out with its ETag, the X-Cache verdict and a
// max-age of ttl. Seeded documents never change, so they are immutable.
func Cached(w http.ResponseWriter, r *http.Request, data []byte, etag string, ttl time.Duration, hit bool) {
	h := w.Header()
	h.Set("ETag", etag)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	verdict := "MISS"
	if hit {
		verdict = "HIT"
	}
	h.Set("Content-Type", "application/json")
	h.Set("Vary", "Accept-Encoding")
	h.Set("X-Cache", verdict)
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, immutable", int(ttl.Seconds())))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
