package main

import (
	"encoding/json"
	"net/http"

	"github.com/campuskit/campuskit/pkg/guard"
)

// meHandler echoes the resolved request context. It doubles as a smoke
// test for the whole pipeline: if it answers, extraction, validation,
// tenant resolution and the membership check all passed.
func meHandler(w http.ResponseWriter, r *http.Request) {
	gc := guard.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":              gc.Session.UserID,
		"email":                gc.Session.Email,
		"roles":                gc.Session.Roles,
		"must_change_password": gc.Session.MustChangePassword,
		"institute_id":         gc.InstituteID,
		"institute_subdomain":  gc.InstituteSubdomain,
	})
}

func reportsHandler(w http.ResponseWriter, r *http.Request) {
	gc := guard.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"institute_id": gc.InstituteID,
		"reports":      []any{},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
