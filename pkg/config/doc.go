// Package config provides a type-safe, cached way to load application
// configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process (missing files are fine),
// and each configuration struct type is parsed from the environment at most
// once, even under concurrent access. Subsequent Load calls for the same
// type return the cached copy.
//
// Every subsystem declares its own Config struct with env tags:
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
