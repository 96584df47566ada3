package token_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/pkg/token"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "http://acme.platform.com/courses", nil)
}

func sessionJSON() string {
	return `{"access_token":"tok123","refresh_token":"ref456","token_type":"bearer"}`
}

// addJSONCookie stores a JSON payload the way browsers do: the value is
// percent-encoded so it only contains cookie-safe bytes.
func addJSONCookie(r *http.Request, name, payload string) {
	r.AddCookie(&http.Cookie{Name: name, Value: url.QueryEscape(payload)})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	extractor := token.NewExtractor("proj")

	t.Run("authorization header", func(t *testing.T) {
		t.Parallel()

		r := newRequest(t)
		r.Header.Set("Authorization", "Bearer tok123")

		cred, ok := extractor.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "tok123", cred)
	})

	t.Run("header beats cookie", func(t *testing.T) {
		t.Parallel()

		r := newRequest(t)
		r.Header.Set("Authorization", "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: "sb-proj-auth-token", Value: "cookie-token"})

		cred, ok := extractor.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "header-token", cred)
	})

	t.Run("project cookie with base64 wrapped json", func(t *testing.T) {
		t.Parallel()

		encoded := "base64-" + base64.StdEncoding.EncodeToString([]byte(sessionJSON()))
		r := newRequest(t)
		r.AddCookie(&http.Cookie{Name: "sb-proj-auth-token", Value: encoded})

		cred, ok := extractor.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "tok123", cred)
	})

	t.Run("raw and base64 cookie values agree", func(t *testing.T) {
		t.Parallel()

		raw := newRequest(t)
		addJSONCookie(raw, "sb-proj-auth-token", sessionJSON())

		wrapped := newRequest(t)
		wrapped.AddCookie(&http.Cookie{
			Name:  "sb-proj-auth-token",
			Value: "base64-" + base64.StdEncoding.EncodeToString([]byte(sessionJSON())),
		})

		fromRaw, ok := extractor.Extract(raw)
		require.True(t, ok)
		fromWrapped, ok := extractor.Extract(wrapped)
		require.True(t, ok)

		assert.Equal(t, fromRaw, fromWrapped)
		assert.Equal(t, "tok123", fromRaw)
	})

	t.Run("unparseable cookie falls back to raw value", func(t *testing.T) {
		t.Parallel()

		r := newRequest(t)
		r.AddCookie(&http.Cookie{Name: "sb-proj-auth-token", Value: "bare-opaque-token"})

		cred, ok := extractor.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "bare-opaque-token", cred)
	})

	t.Run("legacy cookie names", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"sb-access-token", "supabase-auth-token"} {
			r := newRequest(t)
			addJSONCookie(r, name, sessionJSON())

			cred, ok := extractor.Extract(r)
			require.True(t, ok, name)
			assert.Equal(t, "tok123", cred, name)
		}
	})

	t.Run("project cookie beats legacy cookie", func(t *testing.T) {
		t.Parallel()

		r := newRequest(t)
		addJSONCookie(r, "supabase-auth-token", `{"access_token":"legacy"}`)
		addJSONCookie(r, "sb-proj-auth-token", `{"access_token":"current"}`)

		cred, ok := extractor.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "current", cred)
	})

	t.Run("no credential", func(t *testing.T) {
		t.Parallel()

		cred, ok := extractor.Extract(newRequest(t))
		assert.False(t, ok)
		assert.Empty(t, cred)
	})

	t.Run("malformed base64 is skipped", func(t *testing.T) {
		t.Parallel()

		r := newRequest(t)
		r.AddCookie(&http.Cookie{Name: "sb-proj-auth-token", Value: "base64-%%%not-base64%%%"})
		r.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "fallback-token"})

		cred, ok := extractor.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "fallback-token", cred)
	})

	t.Run("authorization scheme other than bearer is ignored", func(t *testing.T) {
		t.Parallel()

		r := newRequest(t)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		_, ok := extractor.Extract(r)
		assert.False(t, ok)
	})

	t.Run("custom legacy cookie list", func(t *testing.T) {
		t.Parallel()

		custom := token.NewExtractor("proj", token.WithLegacyCookies("old-session"))

		r := newRequest(t)
		addJSONCookie(r, "old-session", `{"access_token":"old"}`)

		cred, ok := custom.Extract(r)
		require.True(t, ok)
		assert.Equal(t, "old", cred)
	})
}
