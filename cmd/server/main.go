package main

import (
	"context"
	_ "embed"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/campuskit/campuskit/modules/registry"
	"github.com/campuskit/campuskit/pkg/cache"
	"github.com/campuskit/campuskit/pkg/config"
	"github.com/campuskit/campuskit/pkg/guard"
	"github.com/campuskit/campuskit/pkg/httpserver"
	"github.com/campuskit/campuskit/pkg/institute"
	"github.com/campuskit/campuskit/pkg/jwt"
	"github.com/campuskit/campuskit/pkg/logger"
	"github.com/campuskit/campuskit/pkg/pg"
	"github.com/campuskit/campuskit/pkg/rbac"
	"github.com/campuskit/campuskit/pkg/redis"
	"github.com/campuskit/campuskit/pkg/requestid"
	"github.com/campuskit/campuskit/pkg/session"
	"github.com/campuskit/campuskit/pkg/token"
)

//go:embed roles.yml
var defaultRoles []byte

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	logOpts := []logger.Option{
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			institute.LoggerExtractor(),
			session.LoggerExtractor(),
		),
	}
	if cfg.Env == "production" {
		logOpts = append(logOpts, logger.WithProduction("campuskit"))
	} else {
		logOpts = append(logOpts, logger.WithDevelopment("campuskit"))
	}
	log := logger.New(logOpts...)
	slog.SetDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !cfg.DisableAutoMigrate {
		if err := pg.Migrate(ctx, pool, registry.Migrations, registry.MigrationsDir, log); err != nil {
			return err
		}
	}

	probes := []func(context.Context) error{pg.Healthcheck(pool)}

	// Caches default to in-process memory; a redis driver shares them
	// across replicas so invalidations take effect fleet-wide.
	var (
		sessionStore cache.Store[session.Session]
		lookupStore  cache.Store[institute.Record]
	)
	switch cfg.CacheDriver {
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		sessionStore = cache.NewRedis[session.Session](client, "sessions")
		lookupStore = cache.NewRedis[institute.Record](client, "institutes")
		probes = append(probes, redis.Healthcheck(client))
	default:
		sessionStore = cache.NewMemory[session.Session]()
		lookupStore = cache.NewMemory[institute.Record]()
	}

	store := registry.NewStore(pool)

	jwtSvc, err := jwt.New(cfg.JWTSecret)
	if err != nil {
		return err
	}
	validator := session.NewValidator(session.NewJWTVerifier(jwtSvc), store,
		session.WithStore(sessionStore),
		session.WithTTL(cfg.SessionTTL),
	)
	lookup := institute.NewLookup(store,
		institute.WithStore(lookupStore),
		institute.WithTTL(cfg.InstituteTTL),
		institute.WithNegativeTTL(cfg.InstituteNegTTL),
	)
	extractor := token.NewExtractor(cfg.ProjectRef)
	gate := guard.New(extractor, validator, lookup)

	rolesSource := rbac.NewYAMLSource(defaultRoles)
	if cfg.RolesConfigPath != "" {
		rolesSource = rbac.NewYAMLFileSource(cfg.RolesConfigPath)
	}
	authz, err := rbac.NewAuthorizer(ctx, rolesSource)
	if err != nil {
		return err
	}

	registrySvc := registry.NewService(store, lookup, validator, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthHandler(log, probes...))

	r.Route("/admin", func(r chi.Router) {
		r.Use(gate.RequireSuperuser())
		r.Mount("/", registry.Router(registrySvc, log))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(gate.RequireInstituteContext())
		r.Get("/me", meHandler)
		r.With(guard.RequirePermission(authz, nil, "reports.read")).
			Get("/reports", reportsHandler)
	})

	return httpserver.Run(ctx, cfg.HTTP, r, log)
}
