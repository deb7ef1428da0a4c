package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/campushub/backend/internal/flagx"
	"github.com/campushub/backend/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	AccessTokenPrivateKey        string         `json:"access_token_private_key"`
	AccessTokenPublicKey         string         `json:"access_token_public_key"`
	RefreshTokenPrivateKey       string         `json:"refresh_token_private_key"`
	RefreshTokenPublicKey        string         `json:"refresh_token_public_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flags. If neither flag is set, no file is loaded. An
// unreadable or invalid file panics: starting with half a config is worse
// than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.AccessTokenPrivateKey = c.AccessTokenPrivateKey
	config.AccessTokenPublicKey = c.AccessTokenPublicKey
	config.RefreshTokenPrivateKey = c.RefreshTokenPrivateKey
	config.RefreshTokenPublicKey = c.RefreshTokenPublicKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
}
