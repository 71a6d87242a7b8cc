package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchly/wrenchly/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses environment into struct", func(t *testing.T) {
		type serverConfig struct {
			Addr  string `env:"TEST_LOAD_ADDR" envDefault:":8080"`
			Debug bool   `env:"TEST_LOAD_DEBUG" envDefault:"false"`
		}
		t.Setenv("TEST_LOAD_ADDR", ":9090")
		t.Setenv("TEST_LOAD_DEBUG", "true")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
		assert.True(t, cfg.Debug)
	})

	t.Run("applies defaults", func(t *testing.T) {
		type defaultsConfig struct {
			Addr string `env:"TEST_LOAD_MISSING_ADDR" envDefault:":8080"`
		}

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
	})

	t.Run("caches per type across calls", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_LOAD_CACHED" envDefault:"first"`
		}
		t.Setenv("TEST_LOAD_CACHED", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		// A changed environment does not reparse an already-loaded type.
		t.Setenv("TEST_LOAD_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.Value, second.Value)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *struct{}
		err := config.Load(cfg)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("required variable missing", func(t *testing.T) {
		type requiredConfig struct {
			APIKey string `env:"TEST_LOAD_REQUIRED_KEY,required"`
		}

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type mustConfig struct {
			APIKey string `env:"TEST_MUSTLOAD_REQUIRED_KEY,required"`
		}

		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})
}
