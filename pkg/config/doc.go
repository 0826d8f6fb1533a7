// Package config loads typed configuration structs from environment
// variables, with an optional .env file bootstrap for local development.
//
// Each configuration type is parsed at most once per process; subsequent
// calls return the cached value. Struct fields declare their sources via
// `env` tags:
//
//	type JWTConfig struct {
//		Secret string        `env:"JWT_SECRET,required"`
//		TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
//	}
//
//	var cfg JWTConfig
//	config.MustLoad(&cfg)
package config
