package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the application configuration loaded from environment
// variables. Defaults target the docker compose setup.
type Config struct {
	HTTPPort string `koanf:"HTTP_PORT"`

	PostgresAddress  string `koanf:"POSTGRES_ADDRESS"`
	PostgresPort     string `koanf:"POSTGRES_PORT"`
	PostgresDB       string `koanf:"POSTGRES_DB"`
	PostgresUsername string `koanf:"POSTGRES_USERNAME"`
	PostgresPassword string `koanf:"POSTGRES_PASSWORD"`

	JWTSecret       string `koanf:"JWT_SECRET"`
	JWTIssuer       string `koanf:"JWT_ISSUER"`
	JWTAudience     string `koanf:"JWT_AUDIENCE"`
	JWTExpirationMs int64  `koanf:"JWT_EXPIRATION_MS"`

	OperatorWorkers int `koanf:"OPERATOR_WORKERS"`
}

var defaults = map[string]interface{}{
	"HTTP_PORT":         "9446",
	"POSTGRES_ADDRESS":  "localhost",
	"POSTGRES_PORT":     "5433",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_USERNAME": "postgres",
	"POSTGRES_PASSWORD": "testpassword",
	"JWT_SECRET":        "local-dev-secret",
	"JWT_ISSUER":        "finance-server",
	"JWT_AUDIENCE":      "finance-app",
	"JWT_EXPIRATION_MS": int64(3600000),
	"OPERATOR_WORKERS":  8,
}

// ProcessEnvironmentVariables loads defaults and overlays any environment
// variables that are set.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// PostgresURL builds the connection string for the configured database.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
