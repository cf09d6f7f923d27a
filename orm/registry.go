package orm

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

// Registry is an append-only list of unique byte values with constant cost
// membership checks and positional access. It never removes entries, which
// keeps positions stable and makes the list safe to walk in pages while
// entries are being added.
type Registry struct {
	name string
	size Sequence
}

// NewRegistry returns a registry persisting its state under the given name.
func NewRegistry(name string) Registry {
	return Registry{
		name: name,
		size: NewSequence(name, "size"),
	}
}

func (r Registry) posKey(i int64) []byte {
	return append([]byte("_r."+r.name+":i:"), EncodeSequence(i)...)
}

func (r Registry) memberKey(val []byte) []byte {
	return append([]byte("_r."+r.name+":m:"), val...)
}

// Append adds the value at the end of the registry. Appending a value that
// is already registered is a noop.
func (r Registry) Append(db recpm.KVStore, val []byte) error {
	if len(val) == 0 {
		return errors.Wrap(errors.ErrEmpty, "registry value")
	}
	ok, err := db.Has(r.memberKey(val))
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	i, err := r.size.NextInt(db)
	if err != nil {
		return err
	}
	if err := db.Set(r.posKey(i), val); err != nil {
		return err
	}
	return db.Set(r.memberKey(val), EncodeSequence(i))
}

// Count returns the number of registered values.
func (r Registry) Count(db recpm.ReadOnlyKVStore) (int64, error) {
	n, _, err := r.size.Latest(db)
	return n, err
}

// At returns the value at position i. Positions are zero based and assigned
// in registration order.
func (r Registry) At(db recpm.ReadOnlyKVStore, i int64) ([]byte, error) {
	val, err := db.Get(r.posKey(i + 1))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "registry %s has no position %d", r.name, i)
	}
	return val, nil
}

// Has returns true if the value was registered.
func (r Registry) Has(db recpm.ReadOnlyKVStore, val []byte) (bool, error) {
	return db.Has(r.memberKey(val))
}
