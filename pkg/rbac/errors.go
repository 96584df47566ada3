package rbac

import "errors"

var (
	// ErrUnknownRole is returned for a role name outside the declared set.
	ErrUnknownRole = errors.New("unknown role")

	// ErrPermissionDenied is returned when a role lacks a permission.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCircularInheritance is returned when role inheritance loops.
	ErrCircularInheritance = errors.New("circular role inheritance")

	// ErrInvalidSource is returned when role definitions cannot be parsed.
	ErrInvalidSource = errors.New("invalid role source")
)
