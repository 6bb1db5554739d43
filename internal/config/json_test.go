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

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"auth": {
			"private_key_path": "/keys/private.pem",
			"public_key_path": "/keys/public.pem",
			"access_token_ttl": "15m",
			"refresh_token_ttl": "168h"
		},
		"storage": {"db": {"dsn": "postgres://localhost/auth"}},
		"server": {"http_address": "127.0.0.1:8081", "request_timeout": "45s"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "/keys/private.pem", cfg.Auth.PrivateKeyPath)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "postgres://localhost/auth", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	assert.Error(t, err)
}

func TestParseJSON_BrokenJSON(t *testing.T) {
	path := writeTempJSON(t, `{"auth":`)
	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestDuration_UnmarshalString(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))
}

func TestDuration_UnmarshalNumber(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))
}

func TestDuration_UnmarshalGarbage(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"ninety seconds"`), &d))
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration(30 * time.Minute)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"30m0s"`, string(raw))
}
