package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".taskd", ConfigFileName), store.Path())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_LoadNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[server]
addr = ":8080"
rate_limit = 50
request_timeout_seconds = 5

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, ":8080", store.GetString("server.addr"))
	assert.Equal(t, 5, store.GetInt("server.request_timeout_seconds"))
	assert.InDelta(t, 50.0, store.GetFloat("server.rate_limit"), 0.0001)
	assert.Equal(t, "debug", store.GetString("log.level"))
	assert.Equal(t, []string{"log.level", "server.addr", "server.rate_limit", "server.request_timeout_seconds"}, store.Keys())
}

func TestConfigStore_TypedGetters_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("b", true))

	assert.Zero(t, store.GetInt("s"))
	assert.Zero(t, store.GetFloat("s"))
	assert.False(t, store.GetBool("s"))
	assert.Empty(t, store.GetString("b"))
	assert.True(t, store.GetBool("b"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_SetRequiresKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set(" ", "x"))
}

func TestConfigStore_SaveWritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":9000"))
	require.NoError(t, store.Set("server.rate_burst", 20))
	require.NoError(t, store.Set("log.level", "warn"))

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "Set alone must not write the file")

	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")
	assert.Contains(t, string(data), "[log]")
	assert.NotContains(t, string(data), "'server.addr'")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, ":9000", reloaded.GetString("server.addr"))
	assert.Equal(t, 20, reloaded.GetInt("server.rate_burst"))
	assert.Equal(t, "warn", reloaded.GetString("log.level"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": "x",
		"top":   true,
	})

	assert.Equal(t, map[string]any{"b": 2}, nested["a"])
	assert.Equal(t, map[string]any{"d": map[string]any{"e": "x"}}, nested["c"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, map[string]any{"a.b": 2, "c.d.e": "x", "top": true}, flattenMap(nested, ""))
}

func TestConfigStore_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	require.NoError(t, store.Watch(ctx, func() { changed <- struct{}{} }))

	content := "[log]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	assert.Eventually(t, func() bool {
		return store.GetString("log.level") == "debug"
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotEmpty(t, changed, "onChange should have been called")
}

func TestConfigStore_Watch_MissingDir(t *testing.T) {
	store := &ConfigStore{filePath: filepath.Join(t.TempDir(), "gone", ConfigFileName), data: map[string]any{}}

	err := store.Watch(context.Background(), nil)
	assert.Error(t, err)
}
