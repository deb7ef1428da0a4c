package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":                   "www.example:9000",
		"database_dsn":                    "postgres://json/dsn",
		"access_token_private_key":        "apriv",
		"access_token_public_key":         "apub",
		"refresh_token_private_key":       "rpriv",
		"refresh_token_public_key":        "rpub",
		"access_token_validity_duration":  "1m",
		"refresh_token_validity_duration": "3m",
	})

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
	assert.Equal(t, "postgres://json/dsn", cfg.DatabaseDSN)
	assert.Equal(t, "apriv", cfg.AccessTokenPrivateKey)
	assert.Equal(t, "apub", cfg.AccessTokenPublicKey)
	assert.Equal(t, "rpriv", cfg.RefreshTokenPrivateKey)
	assert.Equal(t, "rpub", cfg.RefreshTokenPublicKey)
	assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 3*time.Minute, cfg.RefreshTokenValidityDuration)
}

func Test_parseJson_NoFlagNoop(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
}

func Test_parseJson_BadFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "missing.json")}

	cfg := &Config{}
	assert.Panics(t, func() { parseJson(cfg) })
}
