package subdomain

import "strings"

// Resolution is the outcome of parsing a Host header.
type Resolution struct {
	// Subdomain is the tenant label(s) before the base domain,
	// empty when the request hit the main domain.
	Subdomain string

	// Domain is the base domain the request was addressed to,
	// keeping the port for local development hosts.
	Domain string

	// IsMainDomain is true when the host carries no tenant subdomain.
	IsMainDomain bool
}

// Resolve parses an HTTP Host header into its subdomain and base domain.
//
// Rules, in order:
//   - a trailing :port is stripped before parsing ("localhost" keeps it
//     on the returned Domain)
//   - "localhost" and "127.0.0.1" are the main domain
//   - "acme.localhost" and "a.b.localhost" yield the labels before the
//     final "localhost" as the subdomain
//   - otherwise the last two labels are the base domain and everything
//     before them is the subdomain; hosts with fewer than two labels are
//     the main domain
//
// Malformed input never errors; it resolves to the main domain.
func Resolve(host string) Resolution {
	port := ""
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		port = host[idx:]
		host = host[:idx]
	}

	if host == "localhost" || host == "127.0.0.1" {
		return Resolution{Domain: host + port, IsMainDomain: true}
	}

	if strings.HasSuffix(host, ".localhost") {
		sub := strings.TrimSuffix(host, ".localhost")
		if sub == "" {
			return Resolution{Domain: "localhost" + port, IsMainDomain: true}
		}
		return Resolution{Subdomain: sub, Domain: "localhost" + port}
	}

	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return Resolution{Domain: host, IsMainDomain: true}
	}

	domain := strings.Join(parts[len(parts)-2:], ".")
	if len(parts) == 2 {
		return Resolution{Domain: domain, IsMainDomain: true}
	}

	sub := strings.Join(parts[:len(parts)-2], ".")
	if sub == "" {
		return Resolution{Domain: domain, IsMainDomain: true}
	}

	return Resolution{Subdomain: sub, Domain: domain}
}
