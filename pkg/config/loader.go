package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by configs that check themselves after parsing.
type Validator interface {
	Validate() error
}

type options struct {
	envFiles []string
	prefix   string
	noCache  bool
}

type Option func(*options)

// WithEnvFiles loads the given files instead of the default .env. Unlike
// the default file they must exist. Variables already set in the process
// environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, files...) }
}

// WithPrefix prepends prefix to every env tag, e.g. "RULEKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithoutCache parses the environment again even if T was loaded before.
func WithoutCache() Option {
	return func(o *options) { o.noCache = true }
}

var (
	cacheMu sync.RWMutex
	cache   = map[string]any{}

	defaultEnvOnce sync.Once
)

// Load fills v from the environment using `env` struct tags. Each config
// type (and prefix) is parsed once per process; later calls copy the
// cached value. If T implements Validator it is validated before caching.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("RULEKIT_")); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	} else {
		defaultEnvOnce.Do(func() {
			// A missing .env is fine.
			_ = godotenv.Load()
		})
	}

	key := cacheKey[T](o.prefix)
	if !o.noCache {
		cacheMu.RLock()
		cached, ok := cache[key]
		cacheMu.RUnlock()
		if ok {
			*v = cached.(T)
			return nil
		}
	}

	var parsed T
	if err := env.ParseWithOptions(&parsed, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(&parsed).(Validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}

	cacheMu.Lock()
	cache[key] = parsed
	cacheMu.Unlock()

	*v = parsed
	return nil
}

// MustLoad is Load that panics on error, for configuration the process
// cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops all cached configs.
func Reset() {
	cacheMu.Lock()
	clear(cache)
	cacheMu.Unlock()
}

func cacheKey[T any](prefix string) string {
	return prefix + "|" + reflect.TypeFor[T]().String()
}
