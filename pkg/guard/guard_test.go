package guard_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/pkg/guard"
	"github.com/campuskit/campuskit/pkg/institute"
	"github.com/campuskit/campuskit/pkg/rbac"
	"github.com/campuskit/campuskit/pkg/session"
	"github.com/campuskit/campuskit/pkg/token"
)

// fakeValidator serves sessions by credential and records whether it
// was consulted.
type fakeValidator struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	called   int
}

func (f *fakeValidator) Validate(_ context.Context, credential string) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called++
	s, ok := f.sessions[credential]
	if !ok {
		return nil, session.ErrInvalidCredential
	}
	return s, nil
}

func (f *fakeValidator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.called
}

// fakeLookup serves institute ids by subdomain and records whether it
// was consulted.
type fakeLookup struct {
	mu         sync.Mutex
	institutes map[string]uuid.UUID
	called     int
}

func (f *fakeLookup) Resolve(_ context.Context, sub string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called++
	id, ok := f.institutes[sub]
	if !ok {
		return uuid.Nil, institute.ErrNotFound
	}
	return id, nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.called
}

func reasonOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
	return body.Reason
}

func okHandler(captured *guard.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = guard.MustFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireInstituteContext(t *testing.T) {
	t.Parallel()

	acmeID := uuid.New()
	betaID := uuid.New()
	teacherID := uuid.New()

	fixture := func() (*fakeValidator, *fakeLookup) {
		validator := &fakeValidator{sessions: map[string]*session.Session{
			"tok123": {
				UserID:      teacherID,
				Email:       "teacher@acme.example",
				InstituteID: &acmeID,
				Roles:       []session.Role{session.RoleTeacher},
			},
			"root-token": {
				UserID: uuid.New(),
				Email:  "ops@platform.example",
				Roles:  []session.Role{session.RoleSuperAdmin},
			},
		}}
		lookup := &fakeLookup{institutes: map[string]uuid.UUID{
			"acme": acmeID,
			"beta": betaID,
		}}
		return validator, lookup
	}

	serve := func(g *guard.Gate, r *http.Request, captured *guard.Context) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		g.RequireInstituteContext()(okHandler(captured)).ServeHTTP(rec, r)
		return rec
	}

	t.Run("member of the resolved institute passes", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://acme.platform.com/courses", nil)
		r.Host = "acme.platform.com"
		r.Header.Set("Authorization", "Bearer tok123")

		var got guard.Context
		rec := serve(g, r, &got)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, acmeID, got.InstituteID)
		assert.Equal(t, "acme", got.InstituteSubdomain)
		assert.Equal(t, teacherID, got.Session.UserID)
	})

	t.Run("end to end with base64 session cookie", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		payload := base64.StdEncoding.EncodeToString([]byte(`{"access_token":"tok123"}`))
		r := httptest.NewRequest(http.MethodGet, "http://acme.platform.com/dashboard", nil)
		r.Host = "acme.platform.com"
		r.AddCookie(&http.Cookie{Name: "sb-proj-auth-token", Value: "base64-" + payload})

		var got guard.Context
		rec := serve(g, r, &got)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, acmeID, got.InstituteID)
		assert.Equal(t, "acme", got.InstituteSubdomain)
		assert.Equal(t, []session.Role{session.RoleTeacher}, got.Session.Roles)
		require.NotNil(t, got.Session.InstituteID)
		assert.Equal(t, acmeID, *got.Session.InstituteID)
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://acme.platform.com/", nil)
		r.Host = "acme.platform.com"

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authentication required", reasonOf(t, rec))
	})

	t.Run("main domain has no institute context", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://platform.com/", nil)
		r.Host = "platform.com"
		r.Header.Set("Authorization", "Bearer tok123")

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "institute context required", reasonOf(t, rec))
	})

	t.Run("reserved subdomain never resolves", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://admin.platform.com/", nil)
		r.Host = "admin.platform.com"
		r.Header.Set("Authorization", "Bearer tok123")

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "institute context required", reasonOf(t, rec))
		assert.Zero(t, lookup.callCount(), "reserved names must not reach the store")
	})

	t.Run("unknown subdomain", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://ghost.platform.com/", nil)
		r.Host = "ghost.platform.com"
		r.Header.Set("Authorization", "Bearer tok123")

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "institute context required", reasonOf(t, rec))
	})

	t.Run("cross institute access is rejected without leaking resolution", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		// tok123 belongs to acme; the host resolves to beta.
		r := httptest.NewRequest(http.MethodGet, "http://beta.platform.com/courses", nil)
		r.Host = "beta.platform.com"
		r.Header.Set("Authorization", "Bearer tok123")

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "institute access required", reasonOf(t, rec))
	})

	t.Run("both resolutions run even when authentication fails", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://acme.platform.com/", nil)
		r.Host = "acme.platform.com"
		r.Header.Set("Authorization", "Bearer bad-token")

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authentication required", reasonOf(t, rec))
		assert.Equal(t, 1, validator.callCount())
		assert.Equal(t, 1, lookup.callCount(), "institute resolution must not be skipped")
	})

	t.Run("superuser passes against any institute", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		for _, host := range []string{"acme.platform.com", "beta.platform.com"} {
			r := httptest.NewRequest(http.MethodGet, "http://"+host+"/", nil)
			r.Host = host
			r.Header.Set("Authorization", "Bearer root-token")

			var got guard.Context
			rec := serve(g, r, &got)

			require.Equal(t, http.StatusOK, rec.Code, host)
			assert.Nil(t, got.Session.InstituteID)
		}
	})

	t.Run("superuser still needs a resolvable institute", func(t *testing.T) {
		t.Parallel()

		validator, lookup := fixture()
		g := guard.New(token.NewExtractor("proj"), validator, lookup)

		r := httptest.NewRequest(http.MethodGet, "http://ghost.platform.com/", nil)
		r.Host = "ghost.platform.com"
		r.Header.Set("Authorization", "Bearer root-token")

		rec := serve(g, r, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "institute context required", reasonOf(t, rec))
	})
}

func TestRequireSuperuser(t *testing.T) {
	t.Parallel()

	validator := &fakeValidator{sessions: map[string]*session.Session{
		"root-token":    {UserID: uuid.New(), Roles: []session.Role{session.RoleSuperAdmin}},
		"teacher-token": {UserID: uuid.New(), Roles: []session.Role{session.RoleTeacher}},
	}}
	lookup := &fakeLookup{institutes: map[string]uuid.UUID{}}
	g := guard.New(token.NewExtractor("proj"), validator, lookup)

	serve := func(authorization string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "http://platform.com/admin/institutes", nil)
		r.Host = "platform.com"
		if authorization != "" {
			r.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		g.RequireSuperuser()(okHandler(nil)).ServeHTTP(rec, r)
		return rec
	}

	t.Run("superuser passes without tenant resolution", func(t *testing.T) {
		rec := serve("Bearer root-token")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, lookup.callCount())
	})

	t.Run("non superuser rejected", func(t *testing.T) {
		rec := serve("Bearer teacher-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "superuser access required", reasonOf(t, rec))
	})

	t.Run("missing credential rejected", func(t *testing.T) {
		rec := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authentication required", reasonOf(t, rec))
	})
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	authz, err := rbac.NewAuthorizer(context.Background(), rbac.StaticSource{
		"TEACHER":     {Permissions: []string{"attendance.write"}},
		"STUDENT":     {Permissions: []string{"assignments.submit"}},
		"SUPER_ADMIN": {Permissions: []string{"institutes.manage"}},
	})
	require.NoError(t, err)

	serve := func(sess *session.Session, permissions ...string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "http://acme.platform.com/attendance", nil)
		if sess != nil {
			r = r.WithContext(session.WithContext(r.Context(), sess))
		}
		rec := httptest.NewRecorder()
		guard.RequirePermission(authz, nil, permissions...)(okHandler(nil)).ServeHTTP(rec, r)
		return rec
	}

	t.Run("role with permission passes", func(t *testing.T) {
		t.Parallel()
		rec := serve(&session.Session{Roles: []session.Role{session.RoleTeacher}}, "attendance.write")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("any role may satisfy the check", func(t *testing.T) {
		t.Parallel()
		rec := serve(&session.Session{Roles: []session.Role{session.RoleStudent, session.RoleTeacher}}, "attendance.write")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing permission rejected", func(t *testing.T) {
		t.Parallel()
		rec := serve(&session.Session{Roles: []session.Role{session.RoleStudent}}, "attendance.write")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "permission required", reasonOf(t, rec))
	})

	t.Run("no session rejected", func(t *testing.T) {
		t.Parallel()
		rec := serve(nil, "attendance.write")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authentication required", reasonOf(t, rec))
	})
}
