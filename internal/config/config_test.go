package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-repo-cleaner/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromPath(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.PageSize)
		assert.Equal(t, "updated", cfg.Sort)
		assert.Empty(t, cfg.APIURL)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
api_url: https://ghe.example.com/api/v3/
page_size: 30
sort: pushed
list_user: someone
targets:
  - me/old-a
  - me/old-b
`)
		cfg, err := LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.APIURL)
		assert.Equal(t, 30, cfg.PageSize)
		assert.Equal(t, "pushed", cfg.Sort)
		assert.Equal(t, "someone", cfg.ListUser)
		assert.Equal(t, []string{"me/old-a", "me/old-b"}, cfg.Targets)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "page_size: [")
		_, err := LoadFromPath(path)
		var cfgErr *domain.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestLoad(t *testing.T) {
	t.Run("token and api url come from the environment", func(t *testing.T) {
		t.Setenv(TokenEnv, "abc")
		t.Setenv(APIURLEnv, "http://localhost:9999/")
		path := writeConfig(t, "api_url: https://ignored.example.com/\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "abc", cfg.Token)
		assert.Equal(t, "http://localhost:9999/", cfg.APIURL)
	})

	t.Run("missing token is a config error", func(t *testing.T) {
		t.Setenv(TokenEnv, "")
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, TokenEnv, cfgErr.Field)
	})
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		expectField string
	}{
		{name: "valid", cfg: Config{Token: "t", PageSize: 100, Sort: "updated"}},
		{name: "empty sort is allowed", cfg: Config{Token: "t", PageSize: 1}},
		{name: "page size too large", cfg: Config{Token: "t", PageSize: 101}, expectField: "page_size"},
		{name: "page size zero", cfg: Config{Token: "t", PageSize: 0}, expectField: "page_size"},
		{name: "unknown sort", cfg: Config{Token: "t", PageSize: 10, Sort: "stars"}, expectField: "sort"},
		{name: "malformed target", cfg: Config{Token: "t", PageSize: 10, Targets: []string{"just-a-name"}}, expectField: "targets"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.expectField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.expectField, cfgErr.Field)
		})
	}
}
