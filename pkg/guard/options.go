package guard

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler renders a gate rejection.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, reason error)

// Option configures a Gate.
type Option func(*Gate)

// WithErrorHandler replaces the default rejection renderer.
func WithErrorHandler(h ErrorHandler) Option {
	return func(g *Gate) {
		if h != nil {
			g.onError = h
		}
	}
}

// defaultErrorHandler answers 401 with the machine-readable reason.
// Every rejection is unauthorized at this layer; distinguishing a
// login redirect from a permission page is the caller's concern.
func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, reason error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  "unauthorized",
		"reason": reason.Error(),
	})
}
