package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/pkg/rbac"
)

func TestAuthorizer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	source := rbac.StaticSource{
		"STUDENT": {Permissions: []string{"courses.read", "assignments.submit"}},
		"TEACHER": {Permissions: []string{"courses.read", "attendance.write", "assignments.grade"}},
		"INSTITUTE_ADMIN": {
			Inherits:    []string{"TEACHER"},
			Permissions: []string{"batches.manage", "enrollments.manage"},
		},
		"SUPER_ADMIN": {
			Inherits:    []string{"INSTITUTE_ADMIN"},
			Permissions: []string{"institutes.manage"},
		},
	}

	authz, err := rbac.NewAuthorizer(ctx, source)
	require.NoError(t, err)

	t.Run("direct permission", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, authz.Can("TEACHER", "attendance.write"))
	})

	t.Run("inherited permission", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, authz.Can("INSTITUTE_ADMIN", "attendance.write"))
		assert.NoError(t, authz.Can("SUPER_ADMIN", "courses.read"))
	})

	t.Run("denied permission", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, authz.Can("STUDENT", "attendance.write"), rbac.ErrPermissionDenied)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, authz.Can("JANITOR", "courses.read"), rbac.ErrUnknownRole)
	})

	t.Run("can any", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, authz.CanAny("STUDENT", "attendance.write", "courses.read"))
		assert.ErrorIs(t, authz.CanAny("STUDENT", "attendance.write", "batches.manage"), rbac.ErrPermissionDenied)
		assert.NoError(t, authz.CanAny("STUDENT"), "empty permission list always passes")
	})

	t.Run("roles sorted", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"INSTITUTE_ADMIN", "STUDENT", "SUPER_ADMIN", "TEACHER"}, authz.Roles())
	})

	t.Run("circular inheritance rejected", func(t *testing.T) {
		t.Parallel()

		_, err := rbac.NewAuthorizer(ctx, rbac.StaticSource{
			"A": {Inherits: []string{"B"}},
			"B": {Inherits: []string{"A"}},
		})
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})

	t.Run("inheriting an undeclared role fails", func(t *testing.T) {
		t.Parallel()

		_, err := rbac.NewAuthorizer(ctx, rbac.StaticSource{
			"A": {Inherits: []string{"GHOST"}},
		})
		assert.ErrorIs(t, err, rbac.ErrUnknownRole)
	})
}

func TestYAMLSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("parses role document", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`
TEACHER:
  permissions: [courses.read, attendance.write]
INSTITUTE_ADMIN:
  inherits: [TEACHER]
  permissions: [batches.manage]
`)
		authz, err := rbac.NewAuthorizer(ctx, rbac.NewYAMLSource(raw))
		require.NoError(t, err)

		assert.NoError(t, authz.Can("INSTITUTE_ADMIN", "attendance.write"))
		assert.ErrorIs(t, authz.Can("TEACHER", "batches.manage"), rbac.ErrPermissionDenied)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := rbac.NewAuthorizer(ctx, rbac.NewYAMLSource([]byte(":\n  - not valid")))
		assert.ErrorIs(t, err, rbac.ErrInvalidSource)
	})

	t.Run("empty document yields no roles", func(t *testing.T) {
		t.Parallel()

		authz, err := rbac.NewAuthorizer(ctx, rbac.NewYAMLSource(nil))
		require.NoError(t, err)
		assert.Empty(t, authz.Roles())
	})
}
