package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional descriptor path", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse([]string{"fleet_desc.hcl"}, out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "fleet_desc.hcl", cfg.DescPath)
		assert.Equal(t, 0, cfg.Programs)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("flags override", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, _, err := Parse([]string{"-desc", "a.hcl", "-programs", "3", "-log-level", "DEBUG", "-log-format", "json"}, out)
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.DescPath)
		assert.Equal(t, 3, cfg.Programs)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, _, err := Parse([]string{"-d", "b.hcl"}, out)
		require.NoError(t, err)
		assert.Equal(t, "b.hcl", cfg.DescPath)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-format", "xml", "a.hcl"}, out)
		require.Error(t, err)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-level", "loud", "a.hcl"}, out)
		require.Error(t, err)
	})

	t.Run("negative program count", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-programs", "-1", "a.hcl"}, out)
		require.Error(t, err)
	})
}
