package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := config.Load(writeFile(t, "concept_prefix: vss\ndebounce: 1s\n"))
		require.NoError(t, err)
		assert.Equal(t, "vss", cfg.ConceptPrefix)
		assert.Equal(t, time.Second, cfg.Debounce)
		assert.Equal(t, "en", cfg.Language)
	})
}

func TestLoadNaming(t *testing.T) {
	tests := []struct {
		description string
		content     string
		err         string
	}{
		{
			description: "simple and contextual rules",
			content:     "type: PascalCase\nfield:\n  object: camelCase\n  input: snake_case\nargument:\n  field: camelCase\n",
		},
		{
			description: "enum values need instance tags",
			content:     "enumValue: MACROCASE\n",
			err:         "if 'enumValue' is present, 'instanceTag' must also be present",
		},
		{
			description: "unknown element",
			content:     "directive: camelCase\n",
			err:         "invalid element type 'directive'",
		},
		{
			description: "unknown case",
			content:     "type: SpongeCase\n",
			err:         "invalid case type for 'type': 'SpongeCase'",
		},
		{
			description: "unknown context",
			content:     "field:\n  union: camelCase\n",
			err:         "invalid context 'union' for 'field'. Valid contexts: input, interface, object",
		},
		{
			description: "contexts not allowed",
			content:     "instanceTag:\n  object: camelCase\n",
			err:         "element type 'instanceTag' cannot have contexts",
		},
		{
			description: "bad context case",
			content:     "type:\n  enum: shouting\n",
			err:         "invalid case type for 'type.enum': 'shouting'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			naming, err := config.LoadNaming(writeFile(t, tt.content))
			if tt.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "PascalCase", naming.CaseFor(config.ElementType, "object"))
			assert.Equal(t, "snake_case", naming.CaseFor(config.ElementField, "input"))
			assert.Equal(t, "", naming.CaseFor(config.ElementField, "interface"))
			assert.Equal(t, "", naming.CaseFor(config.ElementEnumValue, ""))
		})
	}

	t.Run("no path", func(t *testing.T) {
		naming, err := config.LoadNaming("")
		require.NoError(t, err)
		assert.Nil(t, naming)
	})

	t.Run("empty document", func(t *testing.T) {
		naming, err := config.LoadNaming(writeFile(t, ""))
		require.NoError(t, err)
		assert.Nil(t, naming)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadNaming(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
