package scribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterStore_CreateStartsAtZero(t *testing.T) {
	store := NewCounterStore()
	require.NoError(t, store.Create("page"))

	value, err := store.Read("page")
	require.NoError(t, err)
	assert.Equal(t, 0, value)
}

func TestCounterStore_CreateTwiceFails(t *testing.T) {
	store := NewCounterStore()
	require.NoError(t, store.Create("page"))
	assert.Error(t, store.Create("page"))
}

func TestCounterStore_IncrementAddsExactlyOne(t *testing.T) {
	store := NewCounterStore()
	require.NoError(t, store.Create("page"))

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Increment("page"))
		value, err := store.Read("page")
		require.NoError(t, err)
		assert.Equal(t, i, value)
	}
}

func TestCounterStore_SetThenRead(t *testing.T) {
	store := NewCounterStore()
	require.NoError(t, store.Create("page"))
	require.NoError(t, store.Set("page", 42))

	value, err := store.Read("page")
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestCounterStore_Positive(t *testing.T) {
	store := NewCounterStore()
	require.NoError(t, store.Create("notes"))

	positive, err := store.Positive("notes")
	require.NoError(t, err)
	assert.False(t, positive)

	require.NoError(t, store.Increment("notes"))
	positive, err = store.Positive("notes")
	require.NoError(t, err)
	assert.True(t, positive)

	require.NoError(t, store.Set("notes", -1))
	positive, err = store.Positive("notes")
	require.NoError(t, err)
	assert.False(t, positive)
}

func TestCounterStore_MissingCounter(t *testing.T) {
	store := NewCounterStore()
	assert.Error(t, store.Increment("ghost"))
	assert.Error(t, store.Set("ghost", 1))
	_, err := store.Read("ghost")
	assert.Error(t, err)
}
