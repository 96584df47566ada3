package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/campuskit/pkg/institute"
	"github.com/campuskit/campuskit/pkg/session"
)

// Store is the postgres-backed registry. It implements institute.Provider
// for the lookup cache and session.ProfileStore for the session validator,
// plus the mutation paths used by the admin service.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// FindBySubdomain implements institute.Provider. Soft-deleted institutes
// are invisible; suspended ones are returned with their status so callers
// can decide.
func (s *Store) FindBySubdomain(ctx context.Context, sub string) (*institute.Institute, error) {
	var inst institute.Institute
	var status string
	err := s.pool.QueryRow(ctx, `
		SELECT id, subdomain, name, status, created_at
		FROM institutes
		WHERE lower(subdomain) = lower($1) AND deleted_at IS NULL`,
		sub,
	).Scan(&inst.ID, &inst.Subdomain, &inst.Name, &status, &inst.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, institute.ErrNotFound
		}
		return nil, fmt.Errorf("registry: find institute: %w", err)
	}
	inst.Status = institute.Status(status)
	return &inst, nil
}

// FindProfile implements session.ProfileStore.
func (s *Store) FindProfile(ctx context.Context, userID uuid.UUID) (*session.Profile, error) {
	var p session.Profile
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, email, institute_id, must_change_password
		FROM profiles
		WHERE user_id = $1 AND deleted_at IS NULL`,
		userID,
	).Scan(&p.UserID, &p.Email, &p.InstituteID, &p.MustChangePassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("registry: find profile: %w", err)
	}
	return &p, nil
}

// FindRoles implements session.ProfileStore. A user with no live role
// assignments gets an empty slice, not an error.
func (s *Store) FindRoles(ctx context.Context, userID uuid.UUID) ([]session.Role, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT role FROM role_assignments
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY role`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("registry: find roles: %w", err)
	}
	defer rows.Close()

	roles := []session.Role{}
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("registry: scan role: %w", err)
		}
		roles = append(roles, session.Role(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry: find roles: %w", err)
	}
	return roles, nil
}

// CreateInstitute inserts a new active institute. The subdomain is stored
// lowercased; a live duplicate maps to ErrSubdomainTaken.
func (s *Store) CreateInstitute(ctx context.Context, sub, name string) (*institute.Institute, error) {
	sub = strings.ToLower(strings.TrimSpace(sub))
	var inst institute.Institute
	var status string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO institutes (subdomain, name)
		VALUES ($1, $2)
		RETURNING id, subdomain, name, status, created_at`,
		sub, name,
	).Scan(&inst.ID, &inst.Subdomain, &inst.Name, &status, &inst.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSubdomainTaken
		}
		return nil, fmt.Errorf("registry: create institute: %w", err)
	}
	inst.Status = institute.Status(status)
	return &inst, nil
}

// SetInstituteStatus flips an institute between active and suspended and
// returns its subdomain so the caller can invalidate the lookup cache.
func (s *Store) SetInstituteStatus(ctx context.Context, id uuid.UUID, status institute.Status) (string, error) {
	var sub string
	err := s.pool.QueryRow(ctx, `
		UPDATE institutes SET status = $2
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING subdomain`,
		id, string(status),
	).Scan(&sub)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", institute.ErrNotFound
		}
		return "", fmt.Errorf("registry: set institute status: %w", err)
	}
	return sub, nil
}

// GrantRole adds a live role assignment. Granting an already-held role is
// a no-op.
func (s *Store) GrantRole(ctx context.Context, userID uuid.UUID, role session.Role) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO role_assignments (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) WHERE deleted_at IS NULL DO NOTHING`,
		userID, string(role),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrProfileNotFound
		}
		return fmt.Errorf("registry: grant role: %w", err)
	}
	return nil
}

// RevokeRole soft-deletes a live role assignment. Revoking a role the user
// does not hold is a no-op.
func (s *Store) RevokeRole(ctx context.Context, userID uuid.UUID, role session.Role) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE role_assignments SET deleted_at = now()
		WHERE user_id = $1 AND role = $2 AND deleted_at IS NULL`,
		userID, string(role),
	)
	if err != nil {
		return fmt.Errorf("registry: revoke role: %w", err)
	}
	return nil
}
