package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campuskit/pkg/cache"
	"github.com/campuskit/campuskit/pkg/jwt"
)

// DefaultTTL bounds how long a validated session is served from cache
// before the credential is re-verified.
const DefaultTTL = 2 * time.Minute

// Principal is what the identity provider asserts about a credential:
// a stable user id and the email it was issued for.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

// Verifier checks a bearer credential against the identity provider.
type Verifier interface {
	// Verify returns the principal behind the credential, or an error
	// for invalid, expired, or unparseable credentials.
	Verify(ctx context.Context, credential string) (Principal, error)
}

// Profile is the platform-side account record for a verified principal.
type Profile struct {
	UserID             uuid.UUID
	Email              string
	InstituteID        *uuid.UUID
	MustChangePassword bool
}

// ProfileStore loads profile and role data for session construction.
// Both lookups must exclude soft-deleted rows.
type ProfileStore interface {
	// FindProfile returns the non-deleted profile for a user id, or
	// an error when none exists.
	FindProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// FindRoles returns the user's non-deleted role assignments.
	FindRoles(ctx context.Context, userID uuid.UUID) ([]Role, error)
}

// Validator turns bearer credentials into Sessions, with a short-lived
// cache keyed by the raw credential.
type Validator struct {
	verifier Verifier
	profiles ProfileStore
	store    cache.Store[Session]
	ttl      time.Duration
	now      func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithStore replaces the default in-memory session cache.
func WithStore(store cache.Store[Session]) ValidatorOption {
	return func(v *Validator) {
		if store != nil {
			v.store = store
		}
	}
}

// WithTTL sets the session cache lifetime.
func WithTTL(ttl time.Duration) ValidatorOption {
	return func(v *Validator) {
		if ttl > 0 {
			v.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock used for CachedAt stamps.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator creates a session validator.
func NewValidator(verifier Verifier, profiles ProfileStore, opts ...ValidatorOption) *Validator {
	v := &Validator{
		verifier: verifier,
		profiles: profiles,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.store == nil {
		v.store = cache.NewMemory[Session]()
	}
	return v
}

// Validate exchanges a credential for a session.
//
// Failures are never cached: the identity provider rejecting a
// credential, a missing or soft-deleted profile, and a store failure
// all yield ErrInvalidCredential, and the next request re-verifies
// from scratch. A profile that cannot be loaded is a hard failure,
// never a partial session.
func (v *Validator) Validate(ctx context.Context, credential string) (*Session, error) {
	if credential == "" {
		return nil, ErrInvalidCredential
	}

	if cached, ok := v.store.Get(ctx, credential); ok {
		return &cached, nil
	}

	principal, err := v.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	profile, err := v.profiles.FindProfile(ctx, principal.UserID)
	if err != nil || profile == nil {
		return nil, ErrInvalidCredential
	}

	roles, err := v.profiles.FindRoles(ctx, principal.UserID)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	sess := Session{
		UserID:             profile.UserID,
		Email:              profile.Email,
		InstituteID:        profile.InstituteID,
		Roles:              roles,
		MustChangePassword: profile.MustChangePassword,
		CachedAt:           v.now(),
	}

	v.store.Set(ctx, credential, sess, v.ttl)
	return &sess, nil
}

// Invalidate drops the cached sessions for the given credentials. Role
// and credential mutations must call this so removed privileges do not
// linger for the rest of the TTL window.
func (v *Validator) Invalidate(ctx context.Context, credentials ...string) {
	v.store.Invalidate(ctx, credentials...)
}

// InvalidateAll drops every cached session.
func (v *Validator) InvalidateAll(ctx context.Context) {
	v.store.InvalidateAll(ctx)
}

// jwtVerifier verifies credentials locally as HS256 access tokens.
type jwtVerifier struct {
	svc *jwt.Service
}

// NewJWTVerifier adapts a jwt.Service into a Verifier. The subject
// claim must be the user's uuid.
func NewJWTVerifier(svc *jwt.Service) Verifier {
	return &jwtVerifier{svc: svc}
}

func (j *jwtVerifier) Verify(ctx context.Context, credential string) (Principal, error) {
	var claims jwt.AccessClaims
	if err := j.svc.Parse(credential, &claims); err != nil {
		return Principal{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, ErrInvalidCredential
	}

	return Principal{UserID: userID, Email: claims.Email}, nil
}
