package session

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role is one of the platform's closed set of role names.
type Role string

const (
	// RoleSuperAdmin is the platform operator role. It carries
	// implicit membership in every institute.
	RoleSuperAdmin Role = "SUPER_ADMIN"

	// RoleInstituteAdmin administers a single institute.
	RoleInstituteAdmin Role = "INSTITUTE_ADMIN"

	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Session is the verified identity of a caller. It is derived from a
// bearer credential on demand and never persisted.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`

	// InstituteID is nil only for platform superusers, who belong to
	// no single institute.
	InstituteID *uuid.UUID `json:"institute_id,omitempty"`

	Roles []Role `json:"roles"`

	// MustChangePassword flags accounts provisioned with a temporary
	// credential.
	MustChangePassword bool `json:"must_change_password"`

	// CachedAt records when this session was built from the credential.
	CachedAt time.Time `json:"cached_at"`
}

// ValidRole reports whether the role is one of the closed set.
func ValidRole(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleInstituteAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(role Role) bool {
	return s != nil && slices.Contains(s.Roles, role)
}

// IsSuperuser reports whether the session belongs to a platform
// operator.
func (s *Session) IsSuperuser() bool {
	return s.HasRole(RoleSuperAdmin)
}

// BelongsTo reports whether the session may act within the given
// institute. Superusers belong everywhere; everyone else must match
// their institute membership exactly.
func (s *Session) BelongsTo(instituteID uuid.UUID) bool {
	if s == nil {
		return false
	}
	if s.IsSuperuser() {
		return true
	}
	return s.InstituteID != nil && *s.InstituteID == instituteID
}
