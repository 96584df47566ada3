package main

import (
	"time"

	"github.com/campuskit/campuskit/pkg/httpserver"
	"github.com/campuskit/campuskit/pkg/pg"
	"github.com/campuskit/campuskit/pkg/redis"
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// ProjectRef names the auth cookie: sb-<ref>-auth-token.
	ProjectRef string `env:"AUTH_PROJECT_REF,required"`
	JWTSecret  string `env:"AUTH_JWT_SECRET,required"`

	SessionTTL         time.Duration `env:"SESSION_CACHE_TTL" envDefault:"2m"`
	InstituteTTL       time.Duration `env:"INSTITUTE_CACHE_TTL" envDefault:"5m"`
	InstituteNegTTL    time.Duration `env:"INSTITUTE_NEGATIVE_CACHE_TTL" envDefault:"0"`
	CacheDriver        string        `env:"CACHE_DRIVER" envDefault:"memory"`
	RolesConfigPath    string        `env:"ROLES_CONFIG_PATH"`
	DisableAutoMigrate bool          `env:"DISABLE_AUTO_MIGRATE" envDefault:"false"`

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config
}
