package app

import (
	"context"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/x"
)

type contextKey string

// CtxAuth is an authenticator that reads the signing conditions the host
// attached to the call context. The host is trusted to have verified the
// signatures before dispatching.
type CtxAuth struct {
	Key contextKey
}

var _ x.Authenticator = CtxAuth{}

// NewCtxAuth returns a context based authenticator keeping its state under
// the given context key.
func NewCtxAuth(key string) CtxAuth {
	return CtxAuth{Key: contextKey(key)}
}

// SetConditions attaches the verified signer conditions to the context.
func (a CtxAuth) SetConditions(ctx recpm.Context, conds ...recpm.Condition) recpm.Context {
	return context.WithValue(ctx, a.Key, conds)
}

// GetConditions returns the signer conditions stored in the context.
func (a CtxAuth) GetConditions(ctx recpm.Context) []recpm.Condition {
	conds, ok := ctx.Value(a.Key).([]recpm.Condition)
	if !ok {
		return nil
	}
	return conds
}

// HasAddress returns true if any of the signer conditions resolves to the
// given address.
func (a CtxAuth) HasAddress(ctx recpm.Context, addr recpm.Address) bool {
	for _, cond := range a.GetConditions(ctx) {
		if cond.Address().Equals(addr) {
			return true
		}
	}
	return false
}
