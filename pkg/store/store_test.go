package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemoryStore(t *testing.T) {
	for _, backend := range []string{"", BackendMemory} {
		// Act
		store, err := New(Config{Backend: backend})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.IsType(t, &MemoryStore{}, store)
		require.NoError(t, store.Close())
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(Config{Backend: "sqlite"})

	assert.True(t, errors.Is(err, ErrUnknownBackend))
	assert.Contains(t, err.Error(), `"sqlite"`)
}

func TestStore_Interface(t *testing.T) {
	var _ Store = (*MemoryStore)(nil)
}
