package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	// LockWait bounds how long a circulation transaction waits on a row lock
	// before it fails as retryable.
	LockWait time.Duration `env:"LOCK_WAIT" default:"3s"`
}
