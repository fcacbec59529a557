package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-la-firme/librarysystem/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults and env overrides", func(t *testing.T) {
		type testConfig struct {
			BaseURL string `env:"TEST_LOADER_BASE_URL" envDefault:"/api"`
			Pages   int    `env:"TEST_LOADER_PAGES" envDefault:"10"`
		}

		t.Setenv("TEST_LOADER_PAGES", "25")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "/api", cfg.BaseURL)
		assert.Equal(t, 25, cfg.Pages)
	})

	t.Run("caches per type across calls", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_LOADER_CACHED" envDefault:"first"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "first", first.Value)

		// A later env change does not affect the cached config.
		t.Setenv("TEST_LOADER_CACHED", "second")

		var again cachedConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Value)
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		type nilConfig struct{}
		var p *nilConfig
		assert.ErrorIs(t, config.Load(p), config.ErrNilPointer)
	})

	t.Run("required variable missing fails", func(t *testing.T) {
		type requiredConfig struct {
			Token string `env:"TEST_LOADER_REQUIRED,required"`
		}

		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type mustConfig struct {
			Token string `env:"TEST_LOADER_MUST,required"`
		}

		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})
}
