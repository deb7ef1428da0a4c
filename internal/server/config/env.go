package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading an
// optional .env file first. A missing .env file is fine; the process
// environment still applies.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString("LISTEN_ADDR", &config.EndpointAddr)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("JWT_ACCESS_PRIVATE_KEY", &config.AccessTokenPrivateKey)
	setString("JWT_ACCESS_PUBLIC_KEY", &config.AccessTokenPublicKey)
	setString("JWT_REFRESH_PRIVATE_KEY", &config.RefreshTokenPrivateKey)
	setString("JWT_REFRESH_PUBLIC_KEY", &config.RefreshTokenPublicKey)
	setDuration("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	setDuration("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
}
