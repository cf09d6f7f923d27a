/*
Package app assembles the pieces of the ledger into one dispatch engine.

The host hands every call to the Application together with the verified
signer conditions and the current block coordinates. The Application builds
the call context, runs the transaction through the decorator stack and the
router, and leaves the state changes in the backing store.
*/
package app

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

// Application dispatches calls against a single state store.
type Application struct {
	store   recpm.CacheableKVStore
	handler recpm.Handler
	auth    CtxAuth
	chainID string
	logger  log.Logger
}

// New constructs an Application from its parts. The handler is usually a
// Router wrapped by ChainDecorators.
func New(store recpm.CacheableKVStore, handler recpm.Handler, auth CtxAuth, chainID string, logger log.Logger) *Application {
	if logger == nil {
		logger = recpm.DefaultLogger
	}
	return &Application{
		store:   store,
		handler: handler,
		auth:    auth,
		chainID: chainID,
		logger:  logger,
	}
}

// Store exposes the application state for queries.
func (a *Application) Store() recpm.ReadOnlyKVStore {
	return a.store
}

// InitGenesis runs all initializers against the genesis options. It must be
// called once, before any call is delivered.
func (a *Application) InitGenesis(opts recpm.Options, inits ...recpm.Initializer) error {
	for _, init := range inits {
		if err := init.FromGenesis(opts, a.store); err != nil {
			return errors.Wrapf(err, "initializer %T", init)
		}
	}
	return nil
}

// Deliver executes the transaction and persists its changes. Failed calls
// leave no trace in the state.
func (a *Application) Deliver(height int64, now time.Time, signers []recpm.Condition, tx recpm.Tx) (*recpm.DeliverResult, error) {
	ctx := a.prepareCtx(height, now, signers)
	return a.handler.Deliver(ctx, a.store, tx)
}

// Check performs a dry run of the transaction. It runs on a throwaway cache
// so no state change ever reaches the backing store.
func (a *Application) Check(height int64, now time.Time, signers []recpm.Condition, tx recpm.Tx) (*recpm.CheckResult, error) {
	ctx := a.prepareCtx(height, now, signers)
	cache := a.store.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, tx)
}

func (a *Application) prepareCtx(height int64, now time.Time, signers []recpm.Condition) recpm.Context {
	ctx := context.Background()
	ctx = recpm.WithHeight(ctx, height)
	ctx = recpm.WithBlockTime(ctx, now)
	ctx = recpm.WithChainID(ctx, a.chainID)
	ctx = recpm.WithLogger(ctx, a.logger.With("height", height))
	ctx = a.auth.SetConditions(ctx, signers...)
	return ctx
}
