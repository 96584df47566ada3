package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	loaded = make(map[string]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into cfg based on its `env` field
// tags. The first call of any type loads the optional .env file; later
// calls for the same type return the cached value.
//
//	type AuthConfig struct {
//		ProjectRef string `env:"AUTH_PROJECT_REF,required"`
//		JWTSecret  string `env:"AUTH_JWT_SECRET,required"`
//	}
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// Missing .env is fine; real environments set variables directly.
		_ = godotenv.Load()
	})

	key := typeName[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := loaded[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseFailed, err)
	}

	loaded[key] = *cfg
	return nil
}

// MustLoad is Load that panics on failure, for wiring code where a
// missing required variable should stop startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.PkgPath() + "." + t.Name()
}
