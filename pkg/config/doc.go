// Package config loads application configuration from environment variables
// into tagged Go structs.
//
// It wraps github.com/joho/godotenv for optional .env files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//	type Config struct {
//	    Addr  string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Grace time.Duration `env:"TOAST_GRACE_DELAY" envDefault:"300ms"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Variables already present in the process environment win over values read
// from .env files. The default .env file is optional; files passed through
// WithEnvFiles must exist.
package config
