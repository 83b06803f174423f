// Package config loads typed configuration from the environment.
//
// It loads an optional .env file with github.com/joho/godotenv, then parses
// `env` struct tags with github.com/caarlos0/env/v11. Parsed configs are
// cached per type, so packages can call Load for the same struct without
// re-reading the environment. A config that implements Validator is
// checked before it is cached.
//
//	var cfg Config
//	config.MustLoad(&cfg, config.WithPrefix("RULEKIT_"))
package config
