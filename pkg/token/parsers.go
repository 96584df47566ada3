package token

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// base64Marker prefixes cookie values that were base64-encoded by newer
// auth client versions before being set.
const base64Marker = "base64-"

// parser is one credential extraction strategy. Parsers report
// (credential, true) on success and ("", false) to pass the request to
// the next strategy.
type parser struct {
	name    string
	extract func(r *http.Request) (string, bool)
}

func bearerParser() parser {
	return parser{
		name: "authorization-header",
		extract: func(r *http.Request) (string, bool) {
			value := r.Header.Get("Authorization")
			if !strings.HasPrefix(value, "Bearer ") {
				return "", false
			}
			cred := strings.TrimPrefix(value, "Bearer ")
			return cred, cred != ""
		},
	}
}

func cookieParser(name string) parser {
	return parser{
		name: "cookie:" + name,
		extract: func(r *http.Request) (string, bool) {
			c, err := r.Cookie(name)
			if err != nil || c.Value == "" {
				return "", false
			}
			return credentialFromCookieValue(c.Value)
		},
	}
}

// credentialFromCookieValue decodes one stored session cookie value.
// The value may be base64-wrapped JSON, URL-escaped plain JSON, or a
// bare token; JSON payloads carry the credential in their access_token
// field. A value that fails to parse as JSON is returned verbatim,
// since older clients stored the raw token directly.
func credentialFromCookieValue(value string) (string, bool) {
	// Browsers store JSON cookie values percent-encoded. Only unescape
	// when an escape sequence is present so bare tokens pass untouched.
	if strings.Contains(value, "%") {
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
	}

	if strings.HasPrefix(value, base64Marker) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, base64Marker))
		if err != nil {
			return "", false
		}
		value = string(decoded)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(value), &payload); err == nil && payload.AccessToken != "" {
		return payload.AccessToken, true
	}

	return value, value != ""
}
