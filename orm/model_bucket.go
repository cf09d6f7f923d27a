package orm

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

// ModelBucket is a storage engine for a single model type. All data is kept
// under a bucket-unique key prefix so that many buckets can share one
// KVStore.
type ModelBucket struct {
	prefix []byte
}

// NewModelBucket returns a bucket storing models under the given name.
//
// Bucket name must not contain the ':' character as it is used as the prefix
// separator.
func NewModelBucket(name string) ModelBucket {
	for _, c := range name {
		if c == ':' {
			panic("bucket name must not contain ':': " + name)
		}
	}
	return ModelBucket{prefix: []byte(name + ":")}
}

// DBKey returns the full storage key for the given model key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One loads a single model by key into dest. It returns ErrNotFound wrapped
// error if there is no entity under the key.
func (b ModelBucket) One(db recpm.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load model")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Put validates and persists the model under the given key.
func (b ModelBucket) Put(db recpm.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := validateModel(m); err != nil {
		return err
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the model under the given key. Deleting a non existing
// entity is a noop.
func (b ModelBucket) Delete(db recpm.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Has returns nil if an entity exists under the given key and ErrNotFound
// wrapped error otherwise.
func (b ModelBucket) Has(db recpm.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no entity under key %x", key)
	}
	return nil
}
