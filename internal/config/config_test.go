package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-hybrid-cipher/internal/config"
	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "hybrid.yaml", "shift: -2\nblock_size: 10\nlabel: ABCDEF\nkeyword: ZEBRA\nconcurrency: 4\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		Shift:       -2,
		BlockSize:   10,
		Label:       "ABCDEF",
		Keyword:     "ZEBRA",
		Concurrency: 4,
		LogLevel:    "info",
	}, cfg)
	assert.Equal(t, cipher.Params{Shift: -2, BlockSize: 10, Label: "ABCDEF", Keyword: "ZEBRA"}, cfg.Params())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, "hybrid.yaml", "shift: [1\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "hybrid.yaml", "shift: 1\nkeyword: YAML\nlabel: ABCDEF\n")
	envFile := writeFile(t, ".env", "HYBRID_KEYWORD=DOTENV\nHYBRID_SHIFT=7\n")
	t.Setenv(config.EnvShift, "9")

	cfg, err := config.Load(path, envFile, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Shift)
	assert.Equal(t, "DOTENV", cfg.Keyword)
	assert.Equal(t, "ABCDEF", cfg.Label)
	assert.Equal(t, 4, cfg.BlockSize)
}

func TestLoadInvalidEnvInteger(t *testing.T) {
	t.Setenv(config.EnvBlockSize, "four")
	t.Setenv(config.EnvConcurrency, "many")

	_, err := config.Load("")
	require.Error(t, err)

	errs, ok := err.(errsx.Map)
	require.True(t, ok, "expected errsx.Map, got %T", err)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, config.EnvBlockSize)
	assert.Contains(t, errs, config.EnvConcurrency)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*config.Config)
		errKeys []string
	}{
		"defaults": {
			mutate: func(*config.Config) {},
		},
		"block size": {
			mutate:  func(c *config.Config) { c.BlockSize = 0 },
			errKeys: []string{"block_size"},
		},
		"duplicate label": {
			mutate:  func(c *config.Config) { c.Label = "AADFGV" },
			errKeys: []string{"label"},
		},
		"everything": {
			mutate: func(c *config.Config) {
				c.BlockSize = -1
				c.Label = "ADF"
				c.Keyword = "K"
				c.Concurrency = 0
				c.LogLevel = "loud"
			},
			errKeys: []string{"block_size", "label", "keyword", "concurrency", "log_level"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.errKeys) == 0 {
				require.NoError(t, err)
				require.NoError(t, cfg.Params().Validate())

				return
			}

			errs, ok := err.(errsx.Map)
			require.True(t, ok, "expected errsx.Map, got %T", err)
			assert.Len(t, errs, len(tt.errKeys))
			for _, key := range tt.errKeys {
				assert.Contains(t, errs, key)
			}
		})
	}
}
