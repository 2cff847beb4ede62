package http

import (
	"encoding/json"
	"net/http"

	"github.com/sammelband/sammelband"
)

// codes maps sammelband error codes to HTTP status codes.
var codes = map[string]int{
	sammelband.ECONFLICT:     http.StatusConflict,
	sammelband.EINVALID:      http.StatusBadRequest,
	sammelband.ENOTFOUND:     http.StatusNotFound,
	sammelband.EUNAUTHORIZED: http.StatusUnauthorized,
	sammelband.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for a sammelband error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error reply. Internal errors are logged and
// their details hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := sammelband.ErrorCode(err), sammelband.ErrorMessage(err)
	if code == sammelband.EINTERNAL {
		s.logger().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	writeJSON(w, ErrorStatusCode(code), &ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
