package statefile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/var/lib/blackutility/state.json")

	err := store.Save(State{
		Group:     "blackarch",
		Completed: []string{"nmap", "sqlmap"},
		Remaining: []string{"john", "hashcat"},
	})
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "blackarch", loaded.Group)
	assert.Equal(t, []string{"nmap", "sqlmap"}, loaded.Completed)
	assert.Equal(t, []string{"john", "hashcat"}, loaded.Remaining)
	assert.NotEmpty(t, loaded.SavedAt)
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/var/lib/blackutility/state.json")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorruptFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/state.json", []byte("{truncated"), 0o644))

	store := NewStore(fs, "/state.json")
	_, err := store.Load()
	assert.Error(t, err)
}

func TestStore_SaveOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/state.json")

	require.NoError(t, store.Save(State{Remaining: []string{"a", "b", "c"}}))
	require.NoError(t, store.Save(State{Remaining: []string{"c"}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, loaded.Remaining)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/state.json")

	require.NoError(t, store.Save(State{Remaining: []string{"a"}}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is a no-op.
	require.NoError(t, store.Clear())
}
