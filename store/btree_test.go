package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests handle deletes, overwrites and multi-level wraps.
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	val, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, val)
	has, err := base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, base.Set(k, v))
	val, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, val)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	val, err = cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, val)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	val, err = cache.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, val)
	val, err = base.Get(k2)
	require.NoError(t, err)
	assert.Nil(t, val)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	val, err = base.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, val)

	// ... or discard it
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	val, err = base.Get(k3)
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestBTreeCacheConflicts(t *testing.T) {
	// initialize a base layer with a few values
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))

	cache := base.CacheWrap()

	// deleting in the cache must hide the base value
	require.NoError(t, cache.Delete([]byte("a")))
	val, err := cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
	has, err := cache.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	// the base is untouched until Write
	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	// overwriting in the cache shadows the base value
	require.NoError(t, cache.Set([]byte("b"), []byte("22")))
	val, err = cache.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("22"), val)

	require.NoError(t, cache.Write())

	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
	val, err = base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("22"), val)
}

func TestBTreeCacheNested(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("key"), []byte("one")))

	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("key"), []byte("two")))

	inner := outer.CacheWrap()
	val, err := inner.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), val)

	require.NoError(t, inner.Set([]byte("key"), []byte("three")))
	require.NoError(t, inner.Write())

	// inner write lands in outer, not in base
	val, err = outer.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), val)
	val, err = base.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), val)

	require.NoError(t, outer.Write())
	val, err = base.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), val)
}
