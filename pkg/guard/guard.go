package guard

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/campuskit/campuskit/pkg/async"
	"github.com/campuskit/campuskit/pkg/institute"
	"github.com/campuskit/campuskit/pkg/session"
	"github.com/campuskit/campuskit/pkg/subdomain"
)

// TokenExtractor pulls a bearer credential out of a request.
type TokenExtractor interface {
	Extract(r *http.Request) (string, bool)
}

// SessionValidator exchanges a credential for a verified session.
type SessionValidator interface {
	Validate(ctx context.Context, credential string) (*session.Session, error)
}

// InstituteLookup resolves a subdomain to an active institute id.
type InstituteLookup interface {
	Resolve(ctx context.Context, sub string) (uuid.UUID, error)
}

// Gate builds the access-control middleware for a router.
type Gate struct {
	extractor TokenExtractor
	validator SessionValidator
	lookup    InstituteLookup
	onError   ErrorHandler
}

// New creates a gate from its three collaborators.
func New(extractor TokenExtractor, validator SessionValidator, lookup InstituteLookup, opts ...Option) *Gate {
	g := &Gate{
		extractor: extractor,
		validator: validator,
		lookup:    lookup,
		onError:   defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequireInstituteContext gates tenant-scoped routes.
//
// The session and the institute are resolved concurrently and both
// resolutions always complete before any of their results is examined,
// so neither failure leaks whether the other check succeeded. Only then
// is the membership invariant applied: a non-superuser session's
// institute must equal the resolved one.
func (g *Gate) RequireInstituteContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			credential, _ := g.extractor.Extract(r)
			host := subdomain.Resolve(r.Host)

			sessFuture := async.Go(ctx, func(ctx context.Context) (*session.Session, error) {
				return g.validator.Validate(ctx, credential)
			})
			instFuture := async.Go(ctx, func(ctx context.Context) (uuid.UUID, error) {
				if host.IsMainDomain || host.Subdomain == "" || subdomain.IsReserved(host.Subdomain) {
					return uuid.Nil, institute.ErrNotFound
				}
				return g.lookup.Resolve(ctx, host.Subdomain)
			})

			sess, sessErr := sessFuture.Await()
			instID, instErr := instFuture.Await()

			if sessErr != nil {
				g.onError(w, r, ErrAuthenticationRequired)
				return
			}
			if instErr != nil {
				g.onError(w, r, ErrInstituteContextRequired)
				return
			}
			if !sess.BelongsTo(instID) {
				g.onError(w, r, ErrInstituteAccessRequired)
				return
			}

			ctx = session.WithContext(ctx, sess)
			ctx = institute.WithContext(ctx, institute.ContextValue{ID: instID, Subdomain: host.Subdomain})
			ctx = WithContext(ctx, Context{
				Session:            sess,
				InstituteID:        instID,
				InstituteSubdomain: host.Subdomain,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperuser gates platform-level routes. No institute is
// resolved; the host may be the main domain or any tenant subdomain.
func (g *Gate) RequireSuperuser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, _ := g.extractor.Extract(r)

			sess, err := g.validator.Validate(r.Context(), credential)
			if err != nil {
				g.onError(w, r, ErrAuthenticationRequired)
				return
			}
			if !sess.IsSuperuser() {
				g.onError(w, r, ErrSuperuserRequired)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
		})
	}
}
