package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/store"
)

// label is a minimal model for bucket tests.
type label struct {
	Text string
}

func (l *label) Marshal() ([]byte, error) {
	return []byte(l.Text), nil
}

func (l *label) Unmarshal(raw []byte) error {
	l.Text = string(raw)
	return nil
}

func (l *label) Validate() error {
	if l.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("lbl")

	err := b.Put(db, []byte("a"), &label{Text: "first"})
	require.NoError(t, err)

	var loaded label
	err = b.One(db, []byte("a"), &loaded)
	require.NoError(t, err)
	assert.Equal(t, "first", loaded.Text)

	err = b.One(db, []byte("missing"), &loaded)
	assert.True(t, errors.ErrNotFound.Is(err))

	assert.NoError(t, b.Has(db, []byte("a")))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("missing"))))

	// invalid models must be rejected before they hit the store
	err = b.Put(db, []byte("bad"), &label{})
	assert.True(t, errors.ErrEmpty.Is(err))

	require.NoError(t, b.Delete(db, []byte("a")))
	err = b.One(db, []byte("a"), &loaded)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModelBucketPrefixes(t *testing.T) {
	db := store.MemStore()
	one := NewModelBucket("one")
	two := NewModelBucket("two")

	require.NoError(t, one.Put(db, []byte("k"), &label{Text: "one"}))
	require.NoError(t, two.Put(db, []byte("k"), &label{Text: "two"}))

	var loaded label
	require.NoError(t, one.One(db, []byte("k"), &loaded))
	assert.Equal(t, "one", loaded.Text)
	require.NoError(t, two.One(db, []byte("k"), &loaded))
	assert.Equal(t, "two", loaded.Text)
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("testb", "id")

	latest, _, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), latest)

	for i := int64(1); i < 10; i++ {
		n, err := s.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	latest, raw, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(9), latest)
	assert.Equal(t, EncodeSequence(9), raw)

	// a sibling sequence under the same bucket counts independently
	other := NewSequence("testb", "other")
	n, err := other.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRegistry(t *testing.T) {
	db := store.MemStore()
	r := NewRegistry("holders")

	n, err := r.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, r.Append(db, []byte("alice")))
	require.NoError(t, r.Append(db, []byte("bob")))
	// duplicate registration is a noop
	require.NoError(t, r.Append(db, []byte("alice")))

	n, err = r.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	val, err := r.At(db, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), val)
	val, err = r.At(db, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), val)

	_, err = r.At(db, 2)
	assert.True(t, errors.ErrNotFound.Is(err))

	ok, err := r.Has(db, []byte("bob"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Has(db, []byte("carl"))
	require.NoError(t, err)
	assert.False(t, ok)

	err = r.Append(db, nil)
	assert.True(t, errors.ErrEmpty.Is(err))
}
