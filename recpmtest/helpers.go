/*
Package recpmtest provides mocks and helpers for testing ledger extensions.

Mocks are kept deterministic where possible so that tests can assert on
generated addresses and identifiers.
*/
package recpmtest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/crypto"
)

var condCounter uint64

// NewCondition returns a condition unique within this process run.
func NewCondition() recpm.Condition {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, atomic.AddUint64(&condCounter, 1))
	return recpm.NewCondition("mock", "cond", data)
}

// NewAddress returns an address unique within this process run.
func NewAddress() recpm.Address {
	return NewCondition().Address()
}

// NewKey returns a newly generated private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// SequenceID encodes an integer the same way the sequence counters do.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
