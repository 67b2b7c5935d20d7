package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStore(fs, "/data/user")
	require.NoError(t, err)

	err = store.Write("users", []byte(`[{"id":"u1"}]`))
	require.NoError(t, err)

	data, err := store.Read("users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"u1"}]`, string(data))

	// Overwrite replaces the previous blob
	err = store.Write("users", []byte(`[]`))
	require.NoError(t, err)
	data, err = store.Read("users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileStoreMissingKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStore(fs, "/data/user")
	require.NoError(t, err)

	_, err = store.Read("current_user")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStore(fs, "/data/user")
	require.NoError(t, err)

	require.NoError(t, store.Write("current_user", []byte(`{"id":"u1"}`)))
	require.NoError(t, store.Delete("current_user"))

	_, err = store.Read("current_user")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error
	assert.NoError(t, store.Delete("current_user"))
}

func TestFileStoreSeparateNamespaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	userStore, err := NewFileStore(fs, "/data/user")
	require.NoError(t, err)
	adminStore, err := NewFileStore(fs, "/data/admin")
	require.NoError(t, err)

	// Both stores use a "posts" key; the blobs must not collide
	require.NoError(t, userStore.Write("posts", []byte(`["user"]`)))
	require.NoError(t, adminStore.Write("posts", []byte(`["admin"]`)))

	data, err := userStore.Read("posts")
	require.NoError(t, err)
	assert.Equal(t, `["user"]`, string(data))

	data, err = adminStore.Read("posts")
	require.NoError(t, err)
	assert.Equal(t, `["admin"]`, string(data))
}

func TestJSONHelpers(t *testing.T) {
	store := NewMemoryStore()

	type record struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	in := []record{{ID: "u1", Name: "alice"}, {ID: "u2", Name: "bob"}}
	require.NoError(t, WriteJSON(store, "users", in))

	var out []record
	require.NoError(t, ReadJSON(store, "users", &out))
	assert.Equal(t, in, out)

	err := ReadJSON(store, "missing", &out)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Corrupt blobs surface a parse error
	require.NoError(t, store.Write("users", []byte("{not json")))
	err = ReadJSON(store, "users", &out)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
