/*
Package std wires all extensions of this repository into a runnable
application. It is the place to look at to see how the controllers, the
handler routes and the decorator chain fit together.
*/
package std

import (
	"github.com/tendermint/tendermint/libs/log"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/app"
	"github.com/recpm-network/recpm/store"
	"github.com/recpm-network/recpm/x"
	"github.com/recpm-network/recpm/x/bounty"
	"github.com/recpm-network/recpm/x/distribution"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/utils"
	"github.com/recpm-network/recpm/x/vote"
)

// Ledger bundles the controllers of all extensions. The controllers share
// one wiring, mutations of token balances are gated by the vote
// distribution run and vote casting is gated by the token distribution run.
type Ledger struct {
	Tokens   *token.Controller
	Votes    *vote.Controller
	Bounties *bounty.Controller
}

// NewLedger wires the controllers with their distribution guards.
func NewLedger() *Ledger {
	tokens := token.NewController(distribution.NewVotesRunGuard())
	votes := vote.NewController(tokens, distribution.NewTokensRunGuard())
	bounties := bounty.NewController(tokens, votes)
	return &Ledger{
		Tokens:   tokens,
		Votes:    votes,
		Bounties: bounties,
	}
}

// Router returns a router with all message handlers registered.
func Router(auth x.Authenticator, ledger *Ledger) *app.Router {
	r := app.NewRouter()
	token.RegisterRoutes(r, auth, ledger.Tokens)
	vote.RegisterRoutes(r, auth, ledger.Votes)
	distribution.RegisterRoutes(r, auth, ledger.Tokens, ledger.Votes)
	bounty.RegisterRoutes(r, auth, ledger.Bounties)
	return r
}

// Chain returns the standard decorator chain, logging, panic recovery and a
// savepoint so that a failed call leaves no state behind.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Stack wires the standard router into the standard decorator chain.
func Stack(auth x.Authenticator, ledger *Ledger) recpm.Handler {
	return Chain().WithHandler(Router(auth, ledger))
}

// Initializers returns the genesis initializers of all extensions, in the
// order they must run.
func Initializers() []recpm.Initializer {
	return []recpm.Initializer{
		&token.Initializer{},
		&vote.Initializer{},
		&distribution.Initializer{},
	}
}

// NewApplication builds a complete application on a fresh in memory store.
// InitGenesis must be called on it before delivering transactions.
func NewApplication(chainID string, logger log.Logger) (*app.Application, *Ledger) {
	ledger := NewLedger()
	auth := app.NewCtxAuth("std-auth")
	handler := Stack(auth, ledger)
	return app.New(store.MemStore(), handler, auth, chainID, logger), ledger
}
