package registry

import "errors"

var (
	ErrSubdomainTaken    = errors.New("subdomain already taken")
	ErrSubdomainReserved = errors.New("subdomain is reserved")
	ErrInvalidSubdomain  = errors.New("invalid subdomain")
	ErrInvalidName       = errors.New("invalid institute name")
	ErrInvalidRole       = errors.New("invalid role")
	ErrProfileNotFound   = errors.New("profile not found")
)
