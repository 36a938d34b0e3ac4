// ABOUTME: Tests for the cloud+local cache adapter.
// ABOUTME: Verifies fallback reads and best-effort cloud writes.
package kvcache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetWritesLocalEvenWhenCloudFails(t *testing.T) {
	cloud := NewMemory()
	cloud.FailWrites = errors.New("cloud unreachable")
	local := NewMemory()
	c := New(cloud, local)

	require.NoError(t, c.Set("user_programs", []byte(`[]`)))

	v, ok, err := local.Get("user_programs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), v)
	assert.Equal(t, 0, cloud.Len())
}

func TestGetPrefersCloud(t *testing.T) {
	cloud := NewMemory()
	local := NewMemory()
	require.NoError(t, cloud.Set("k", []byte("cloud")))
	require.NoError(t, local.Set("k", []byte("local")))

	v, ok, err := New(cloud, local).Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("cloud"), v)
}

func TestGetFallsBackToLocal(t *testing.T) {
	cloud := NewMemory()
	cloud.FailReads = errors.New("cloud unreachable")
	local := NewMemory()
	require.NoError(t, local.Set("k", []byte("local")))

	v, ok, err := New(cloud, local).Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("local"), v)
}

func TestGetMissReportsNotFound(t *testing.T) {
	_, ok, err := New(NewMemory(), NewMemory()).Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilCloudRunsLocalOnly(t *testing.T) {
	local := NewMemory()
	c := New(nil, local)

	require.NoError(t, c.Set("k", []byte("v")))
	v, ok, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
	require.NoError(t, c.Remove("k"))
	_, ok, _ = c.Get("k")
	assert.False(t, ok)
}

func TestRemoveDeletesBothStores(t *testing.T) {
	cloud := NewMemory()
	local := NewMemory()
	c := New(cloud, local)
	require.NoError(t, c.Set("k", []byte("v")))

	require.NoError(t, c.Remove("k"))

	assert.Equal(t, 0, cloud.Len())
	assert.Equal(t, 0, local.Len())
}

func TestJSONHelpers(t *testing.T) {
	type entry struct {
		Title string `json:"title"`
	}
	s := NewMemory()

	require.NoError(t, SetJSON(s, "e", entry{Title: "День ног"}))

	got, ok, err := GetJSON[entry](s, "e")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "День ног", got.Title)

	_, ok, err = GetJSON[entry](s, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
