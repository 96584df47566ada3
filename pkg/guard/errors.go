package guard

import "errors"

// Rejection reasons. All of them surface as HTTP 401; the reason string
// is the only distinction callers get.
var (
	// ErrAuthenticationRequired: no credential, or one that did not
	// produce a valid session.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrInstituteContextRequired: the host does not resolve to a
	// non-reserved, active institute.
	ErrInstituteContextRequired = errors.New("institute context required")

	// ErrInstituteAccessRequired: valid session, resolved institute,
	// but the caller is neither a member nor a superuser.
	ErrInstituteAccessRequired = errors.New("institute access required")

	// ErrSuperuserRequired: the route is platform-level and the caller
	// is not a superuser.
	ErrSuperuserRequired = errors.New("superuser access required")

	// ErrPermissionRequired: the caller's roles grant none of the
	// permissions the route demands.
	ErrPermissionRequired = errors.New("permission required")
)
