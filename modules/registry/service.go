package registry

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/campuskit/campuskit/pkg/institute"
	"github.com/campuskit/campuskit/pkg/session"
	"github.com/campuskit/campuskit/pkg/subdomain"
)

// subdomainPattern matches DNS-label style subdomains: lowercase
// alphanumerics with interior hyphens, 1-63 characters.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// InstituteStore is the slice of Store the service mutates institutes
// through.
type InstituteStore interface {
	CreateInstitute(ctx context.Context, sub, name string) (*institute.Institute, error)
	SetInstituteStatus(ctx context.Context, id uuid.UUID, status institute.Status) (string, error)
	GrantRole(ctx context.Context, userID uuid.UUID, role session.Role) error
	RevokeRole(ctx context.Context, userID uuid.UUID, role session.Role) error
	FindBySubdomain(ctx context.Context, sub string) (*institute.Institute, error)
}

// LookupInvalidator drops cached subdomain resolutions after an institute
// mutation.
type LookupInvalidator interface {
	Invalidate(ctx context.Context, sub string)
}

// SessionInvalidator flushes cached sessions after a role mutation.
type SessionInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// Service wraps the registry store with the cache invalidation the rest of
// the request pipeline depends on. Stale cached entries are tolerated for
// reads, so every write path here must invalidate eagerly.
type Service struct {
	store    InstituteStore
	lookups  LookupInvalidator
	sessions SessionInvalidator
	log      *slog.Logger
}

func NewService(store InstituteStore, lookups LookupInvalidator, sessions SessionInvalidator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, lookups: lookups, sessions: sessions, log: log}
}

// CreateInstitute registers a new institute after checking the subdomain
// against the reserved-name list and DNS label rules.
func (s *Service) CreateInstitute(ctx context.Context, sub, name string) (*institute.Institute, error) {
	sub = strings.ToLower(strings.TrimSpace(sub))
	if !subdomainPattern.MatchString(sub) {
		return nil, ErrInvalidSubdomain
	}
	if subdomain.IsReserved(sub) {
		return nil, ErrSubdomainReserved
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	inst, err := s.store.CreateInstitute(ctx, sub, name)
	if err != nil {
		return nil, err
	}
	// A negative lookup for this subdomain may still be cached.
	s.lookups.Invalidate(ctx, sub)
	s.log.InfoContext(ctx, "institute created", "institute_id", inst.ID, "subdomain", inst.Subdomain)
	return inst, nil
}

// Suspend marks an institute suspended and drops its cached resolution so
// suspended tenants stop resolving within a request, not a cache TTL.
func (s *Service) Suspend(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, institute.StatusSuspended)
}

// Reactivate flips a suspended institute back to active.
func (s *Service) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, institute.StatusActive)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status institute.Status) error {
	sub, err := s.store.SetInstituteStatus(ctx, id, status)
	if err != nil {
		return err
	}
	s.lookups.Invalidate(ctx, sub)
	s.log.InfoContext(ctx, "institute status changed", "institute_id", id, "status", string(status))
	return nil
}

// GetInstitute returns a live institute by subdomain, bypassing the lookup
// cache. Admin reads want the current row, not a cached projection.
func (s *Service) GetInstitute(ctx context.Context, sub string) (*institute.Institute, error) {
	return s.store.FindBySubdomain(ctx, strings.ToLower(strings.TrimSpace(sub)))
}

// GrantRole assigns a role and flushes the session cache so the grant is
// visible on the next request.
func (s *Service) GrantRole(ctx context.Context, userID uuid.UUID, role session.Role) error {
	if !session.ValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.store.GrantRole(ctx, userID, role); err != nil {
		return err
	}
	s.sessions.InvalidateAll(ctx)
	s.log.InfoContext(ctx, "role granted", "user_id", userID, "role", string(role))
	return nil
}

// RevokeRole removes a role and flushes the session cache so the revoked
// role stops gating access immediately.
func (s *Service) RevokeRole(ctx context.Context, userID uuid.UUID, role session.Role) error {
	if !session.ValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.store.RevokeRole(ctx, userID, role); err != nil {
		return err
	}
	s.sessions.InvalidateAll(ctx)
	s.log.InfoContext(ctx, "role revoked", "user_id", userID, "role", string(role))
	return nil
}
