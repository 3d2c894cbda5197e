package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "data_dir:        data")
		assert.Contains(t, out, "addr:            :3000")
		assert.Contains(t, out, "request_timeout: 10s")
		assert.Contains(t, out, "rate_limit:      50 req/s (burst 100)")
		assert.Contains(t, out, "level:           info")
		assert.Contains(t, out, "file:            stderr")
	}
}

func TestSettingsShow_DataDirFlag(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "--data-dir", "/tmp/elsewhere", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "data_dir:        /tmp/elsewhere")
}

func TestSettingsSet(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings", "set", "server.addr", ":8080")
	require.NoError(t, err)
	assert.Contains(t, out, "server.addr = :8080")

	_, err = execute(t, "settings", "set", "server.rate_limit", "0")
	require.NoError(t, err)

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "addr:            :8080")
	assert.Contains(t, out, "rate_limit:      disabled")

	got, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, ":8080", got.Server.Addr)
}

func TestSettingsSet_Errors(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"settings", "set", "server.colour", "blue"}},
		{"bad level", []string{"settings", "set", "log.level", "loud"}},
		{"not a number", []string{"settings", "set", "server.rate_burst", "lots"}},
		{"empty addr", []string{"settings", "set", "server.addr", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := execute(t, "settings", "set", "server.addr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg")
}

func TestSettingsKeys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "storage.data_dir\n")
	assert.Contains(t, out, "log.max_files\n")
}

func TestSettings_NotConfigured(t *testing.T) {
	SetServices(nil, nil)
	t.Cleanup(func() { resetFlags(rootCmd) })

	for _, run := range []func() error{
		func() error { return runSettingsShow(settingsShowCmd, nil) },
		func() error { return runSettingsSet(settingsSetCmd, []string{"log.level", "debug"}) },
		func() error { return runSettingsKeys(settingsKeysCmd, nil) },
	} {
		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}
