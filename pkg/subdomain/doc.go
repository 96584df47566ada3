// Package subdomain parses HTTP Host headers into tenant subdomains.
//
// The resolver is a pure function: it never performs I/O and it never
// fails. Hosts it cannot make sense of degrade to "main domain, no
// subdomain" so that callers treat them the same as a request to the
// platform's landing pages.
//
// The package also maintains the deny-list of subdomains that are
// reserved for platform infrastructure (www, api, admin, ...) and must
// never resolve to an institute.
//
// Known limitation: multi-part public suffixes such as .co.uk are not
// special-cased; the last two labels of the host are always treated as
// the base domain.
package subdomain
