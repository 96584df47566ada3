package rbac

import (
	"context"
	"fmt"
	"sort"
)

// Role declares the permissions granted to one role name, plus any
// roles it inherits permissions from.
type Role struct {
	Permissions []string `yaml:"permissions"`
	Inherits    []string `yaml:"inherits"`
}

// Source provides the role definitions.
type Source interface {
	Load(ctx context.Context) (map[string]Role, error)
}

// Authorizer answers permission checks for role names.
type Authorizer interface {
	// Can returns nil when the role holds the permission, directly or
	// through inheritance.
	Can(role, permission string) error

	// CanAny returns nil when the role holds at least one of the
	// permissions. An empty permission list always passes.
	CanAny(role string, permissions ...string) error

	// Roles lists all declared role names, sorted.
	Roles() []string
}

type authorizer struct {
	// permissions holds the flattened, inheritance-resolved grant set
	// per role. Immutable after construction.
	permissions map[string]map[string]struct{}
}

// NewAuthorizer loads role definitions from source and precomputes the
// flattened permission set for each role.
func NewAuthorizer(ctx context.Context, source Source) (Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	flat := make(map[string]map[string]struct{}, len(roles))
	for name := range roles {
		grants := make(map[string]struct{})
		if err := collect(name, roles, grants, make(map[string]bool)); err != nil {
			return nil, err
		}
		flat[name] = grants
	}

	return &authorizer{permissions: flat}, nil
}

func collect(name string, roles map[string]Role, grants map[string]struct{}, visiting map[string]bool) error {
	if visiting[name] {
		return fmt.Errorf("%w: %s", ErrCircularInheritance, name)
	}
	role, ok := roles[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRole, name)
	}

	visiting[name] = true
	for _, p := range role.Permissions {
		grants[p] = struct{}{}
	}
	for _, parent := range role.Inherits {
		if err := collect(parent, roles, grants, visiting); err != nil {
			return err
		}
	}
	visiting[name] = false

	return nil
}

func (a *authorizer) Can(role, permission string) error {
	grants, ok := a.permissions[role]
	if !ok {
		return ErrUnknownRole
	}
	if _, ok := grants[permission]; !ok {
		return ErrPermissionDenied
	}
	return nil
}

func (a *authorizer) CanAny(role string, permissions ...string) error {
	if len(permissions) == 0 {
		return nil
	}
	grants, ok := a.permissions[role]
	if !ok {
		return ErrUnknownRole
	}
	for _, p := range permissions {
		if _, ok := grants[p]; ok {
			return nil
		}
	}
	return ErrPermissionDenied
}

func (a *authorizer) Roles() []string {
	names := make([]string, 0, len(a.permissions))
	for name := range a.permissions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
