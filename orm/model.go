/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets and safely persist
serialized models inside them. Sequences provide atomic counters and a
Registry keeps an append-only, membership-checked list of keys.
*/
package orm

import (
	"github.com/recpm-network/recpm/errors"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

func validateModel(m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid model %T", m)
	}
	return nil
}
