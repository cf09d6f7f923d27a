package utils

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we can
// log them as errors.
type Recovery struct{}

var _ recpm.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx recpm.Context, store recpm.KVStore, tx recpm.Tx, next recpm.Checker) (_ *recpm.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx recpm.Context, store recpm.KVStore, tx recpm.Tx, next recpm.Deliverer) (_ *recpm.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
