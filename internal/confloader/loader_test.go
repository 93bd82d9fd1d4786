package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Token struct {
		Algorithm string        `koanf:"algorithm"`
		ExpiresIn time.Duration `koanf:"expires_in"`
	} `koanf:"token"`
	Password struct {
		Cost int `koanf:"cost"`
	} `koanf:"password"`
	Audit struct {
		Enabled bool `koanf:"enabled"`
	} `koanf:"audit"`
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gocred.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewLoaderDefaults(t *testing.T) {
	l := NewLoader()
	assert.Equal(t, DefaultEnvPrefix, l.envPrefix)
	assert.Empty(t, l.filePath)

	l = NewLoader(WithEnvPrefix("X_"), WithConfigFile("/tmp/a.yaml"), WithoutEnv())
	assert.Equal(t, "X_", l.envPrefix)
	assert.Equal(t, "/tmp/a.yaml", l.filePath)
	assert.True(t, l.skipEnv)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
token:
  algorithm: HS512
  expires_in: 15m
password:
  cost: 12
`)
	var cfg testConfig
	require.NoError(t, NewLoader(WithConfigFile(path), WithoutEnv()).Load(&cfg))

	assert.Equal(t, "HS512", cfg.Token.Algorithm)
	assert.Equal(t, 15*time.Minute, cfg.Token.ExpiresIn)
	assert.Equal(t, 12, cfg.Password.Cost)
}

func TestLoadFileMissing(t *testing.T) {
	err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.NoError(t, NewLoader().LoadFile(""))
}

func TestLoadKeepsExistingDefaults(t *testing.T) {
	path := writeFile(t, "password:\n  cost: 11\n")
	cfg := testConfig{}
	cfg.Token.Algorithm = "HS256"

	require.NoError(t, NewLoader(WithConfigFile(path), WithoutEnv()).Load(&cfg))
	assert.Equal(t, "HS256", cfg.Token.Algorithm)
	assert.Equal(t, 11, cfg.Password.Cost)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "token:\n  algorithm: HS256\n  expires_in: 1h\n")
	t.Setenv("GOCREDTEST_TOKEN__ALGORITHM", "HS384")
	t.Setenv("GOCREDTEST_TOKEN__EXPIRES_IN", "90s")
	t.Setenv("GOCREDTEST_AUDIT__ENABLED", "true")

	var cfg testConfig
	require.NoError(t, NewLoader(WithConfigFile(path), WithEnvPrefix("GOCREDTEST_")).Load(&cfg))

	assert.Equal(t, "HS384", cfg.Token.Algorithm)
	assert.Equal(t, 90*time.Second, cfg.Token.ExpiresIn)
	assert.True(t, cfg.Audit.Enabled)
}

func TestEnvKeyTransform(t *testing.T) {
	l := NewLoader()
	assert.Equal(t, "token.expires_in", l.envKey("GOCRED_TOKEN__EXPIRES_IN"))
	assert.Equal(t, "password.upgrade_on_compare", l.envKey("GOCRED_PASSWORD__UPGRADE_ON_COMPARE"))
}

func TestLoadMap(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.LoadMap(map[string]any{
		"token": map[string]any{"algorithm": "HS512"},
	}))
	assert.Equal(t, "HS512", l.String("token.algorithm"))
	assert.Contains(t, l.Keys(), "token.algorithm")

	var cfg testConfig
	require.NoError(t, l.Unmarshal(&cfg))
	assert.Equal(t, "HS512", cfg.Token.Algorithm)
}

func TestMapProviderReadBytes(t *testing.T) {
	_, err := mapProvider{}.ReadBytes()
	assert.ErrorIs(t, err, ErrReadBytesNotSupported)
}
