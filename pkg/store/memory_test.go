package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/formulaview/pkg/types"
)

func testDoc(id string, version int) *types.DocumentCache {
	text := "# n = range(0, 3)\nformula(n * 2)\n"
	return &types.DocumentCache{
		ID:        types.DocumentID(id),
		Version:   version,
		ContentID: types.ComputeContentID([]byte(text)),
		Text:      text,
		Spans:     []types.FormulaSpan{{Start: 26, End: 31}},
		Directives: types.Directives{
			"n": {Variable: "n", Start: 0, End: 3, Step: 1},
		},
	}
}

func TestNewMemory(t *testing.T) {
	// Act
	store := NewMemory()

	// Assert
	require.NotNil(t, store)
	require.NotNil(t, store.docs)
	assert.Equal(t, 0, store.Len())
}

func TestMemory_PutGet(t *testing.T) {
	// Arrange
	store := NewMemory()
	doc := testDoc("file:///a.py", 1)

	// Act
	err := store.Put(doc)
	require.NoError(t, err)
	got, err := store.Get("file:///a.py")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NotSame(t, doc, got)
}

func TestMemory_GetMissing(t *testing.T) {
	store := NewMemory()

	_, err := store.Get("file:///missing.py")

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemory_PutReplacesWholesale(t *testing.T) {
	// Arrange
	store := NewMemory()
	require.NoError(t, store.Put(testDoc("doc", 1)))

	replacement := &types.DocumentCache{ID: "doc", Version: 2, Text: "nothing"}

	// Act
	err := store.Put(replacement)

	// Assert
	require.NoError(t, err)
	got, err := store.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Empty(t, got.Spans)
	assert.Empty(t, got.Directives)
}

func TestMemory_PutSameVersion(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Put(testDoc("doc", 3)))

	assert.NoError(t, store.Put(testDoc("doc", 3)))
}

func TestMemory_PutStale(t *testing.T) {
	// Arrange
	store := NewMemory()
	require.NoError(t, store.Put(testDoc("doc", 5)))

	// Act
	err := store.Put(testDoc("doc", 4))

	// Assert
	assert.True(t, errors.Is(err, ErrStaleVersion))
	got, err := store.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Version)
}

func TestMemory_PutNil(t *testing.T) {
	store := NewMemory()

	assert.Error(t, store.Put(nil))
}

func TestMemory_CopiesAreIsolated(t *testing.T) {
	// Arrange
	store := NewMemory()
	doc := testDoc("doc", 1)
	require.NoError(t, store.Put(doc))

	// Act - mutate both the original and a returned copy
	doc.Spans[0].Start = 99
	doc.Directives["m"] = types.RangeDirective{Variable: "m"}
	got, err := store.Get("doc")
	require.NoError(t, err)
	got.Spans[0].End = 100
	delete(got.Directives, "n")

	// Assert
	again, err := store.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, types.FormulaSpan{Start: 26, End: 31}, again.Spans[0])
	assert.Len(t, again.Directives, 1)
	assert.Contains(t, again.Directives, "n")
}

func TestMemory_Delete(t *testing.T) {
	// Arrange
	store := NewMemory()
	require.NoError(t, store.Put(testDoc("doc", 1)))

	// Act
	require.NoError(t, store.Delete("doc"))
	require.NoError(t, store.Delete("doc"))

	// Assert
	_, err := store.Get("doc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 0, store.Len())
}

func TestMemory_IDs(t *testing.T) {
	store := NewMemory()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Put(testDoc(id, 1)))
	}

	ids, err := store.IDs()

	require.NoError(t, err)
	assert.Equal(t, []types.DocumentID{"a", "b", "c"}, ids)
	assert.Equal(t, 3, store.Len())
}

func TestMemory_Close(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Put(testDoc("doc", 1)))

	require.NoError(t, store.Close())

	assert.Equal(t, 0, store.Len())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	store := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			_ = store.Put(testDoc("doc", v))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Get("doc")
		}()
	}
	wg.Wait()

	got, err := store.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, 19, got.Version)
}
