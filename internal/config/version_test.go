package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_LegacyKeys(t *testing.T) {
	data := map[string]any{
		"server.url":        "https://old.example.com",
		"toast.duration_ms": float64(2000),
		"toast.icons":       "nerd",
	}

	out, err := Migrate(data)
	require.NoError(t, err)

	assert.Equal(t, "https://old.example.com", out["server.base_url"])
	assert.Equal(t, float64(2000), out["toast.dismiss_delay_ms"])
	assert.Equal(t, "nerd", out["toast.icons"])
	assert.NotContains(t, out, "server.url")
	assert.NotContains(t, out, "toast.duration_ms")
	assert.Equal(t, 1, out["version"])
}

func TestMigrate_NewKeyWinsOverLegacy(t *testing.T) {
	out, err := Migrate(map[string]any{
		"server.url":      "https://old.example.com",
		"server.base_url": "https://new.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://new.example.com", out["server.base_url"])
}

func TestMigrate_CurrentVersionUntouched(t *testing.T) {
	data := map[string]any{"version": float64(1), "server.url": "kept as is"}

	out, err := Migrate(data)
	require.NoError(t, err)

	assert.Equal(t, "kept as is", out["server.url"])
}

func TestMigrate_FutureVersion(t *testing.T) {
	_, err := Migrate(map[string]any{"version": float64(99)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestMigrate_NonNumericVersion(t *testing.T) {
	_, err := Migrate(map[string]any{"version": "one"})

	assert.Error(t, err)
}

func TestApplyMigrations_NoPath(t *testing.T) {
	_, err := ApplyMigrations(map[string]any{}, -1)

	assert.Error(t, err)
}

func TestCurrentVersion(t *testing.T) {
	assert.Equal(t, 1, CurrentVersion)
	assert.Len(t, migrations, CurrentVersion)
}
