package subdomain

import "strings"

// reserved holds subdomains claimed by platform infrastructure.
// None of them may ever resolve to an institute.
var reserved = map[string]struct{}{
	"www":       {},
	"api":       {},
	"admin":     {},
	"app":       {},
	"dashboard": {},
	"mail":      {},
	"email":     {},
	"ftp":       {},
	"localhost": {},
	"staging":   {},
	"dev":       {},
	"demo":      {},
	"support":   {},
	"help":      {},
	"docs":      {},
	"blog":      {},
	"status":    {},
}

// IsReserved reports whether s is on the platform deny-list.
// The check is case-insensitive. Callers must treat a reserved
// subdomain exactly like an unknown one.
func IsReserved(s string) bool {
	_, ok := reserved[strings.ToLower(s)]
	return ok
}
