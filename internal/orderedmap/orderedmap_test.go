package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesFirstInsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("2024-01-16", 1)
	m.Set("2024-01-15", 2)
	m.Set("2024-01-17", 3)
	m.Set("2024-01-15", 4) // overwrite must not move the key

	assert.Equal(t, []string{"2024-01-16", "2024-01-15", "2024-01-17"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("2024-01-15")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestMap_GetMissing(t *testing.T) {
	m := New[string, float64]()

	v, ok := m.Get("missing")
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.False(t, m.Has("missing"))
	assert.Empty(t, m.Keys())
}

func TestMap_KeysReturnsCopy(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)

	keys := m.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestMap_All(t *testing.T) {
	m := New[int, string]()
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")

	var keys []int
	var values []string
	for k, v := range m.All() {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal(t, []int{3, 1, 2}, keys)
	assert.Equal(t, []string{"c", "a", "b"}, values)
}

func TestMap_AllStopsEarly(t *testing.T) {
	m := New[int, int]()
	for i := range 5 {
		m.Set(i, i)
	}

	visited := 0
	for range m.All() {
		visited++
		if visited == 2 {
			break
		}
	}
	assert.Equal(t, 2, visited)
}
