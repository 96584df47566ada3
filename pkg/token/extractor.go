package token

import (
	"fmt"
	"net/http"
)

// defaultLegacyCookies are cookie names written by earlier auth client
// versions. They are consulted after the project cookie.
var defaultLegacyCookies = []string{"sb-access-token", "supabase-auth-token"}

// Extractor resolves a bearer credential from a request using an
// ordered chain of parser strategies.
type Extractor struct {
	parsers []parser
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*extractorConfig)

type extractorConfig struct {
	legacyCookies []string
}

// WithLegacyCookies overrides the legacy cookie names consulted after
// the project cookie. Pass an empty slice to disable the legacy chain.
func WithLegacyCookies(names ...string) ExtractorOption {
	return func(c *extractorConfig) {
		c.legacyCookies = names
	}
}

// NewExtractor builds the extraction chain for a project. The project
// reference determines the primary session cookie name, matching what
// the auth client writes: sb-<ref>-auth-token.
//
// Priority order: Authorization header, project cookie, legacy cookies.
func NewExtractor(projectRef string, opts ...ExtractorOption) *Extractor {
	cfg := &extractorConfig{legacyCookies: defaultLegacyCookies}
	for _, opt := range opts {
		opt(cfg)
	}

	parsers := []parser{
		bearerParser(),
		cookieParser(fmt.Sprintf("sb-%s-auth-token", projectRef)),
	}
	for _, name := range cfg.legacyCookies {
		parsers = append(parsers, cookieParser(name))
	}

	return &Extractor{parsers: parsers}
}

// Extract returns the first credential any strategy finds, or false
// when the request carries none.
func (e *Extractor) Extract(r *http.Request) (string, bool) {
	for _, p := range e.parsers {
		if cred, ok := p.extract(r); ok {
			return cred, true
		}
	}
	return "", false
}
