package distribution

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/vote"
)

// holderPopulation are all token holders, weighted by balance. Shares are
// paid out as vote credit.
type holderPopulation struct {
	tokens *token.Controller
}

var _ Population = holderPopulation{}

// NewHolderPopulation returns the population of the vote credit payout.
func NewHolderPopulation(tokens *token.Controller) Population {
	return holderPopulation{tokens: tokens}
}

func (p holderPopulation) Count(db recpm.ReadOnlyKVStore) (int64, error) {
	return p.tokens.HolderCount(db)
}

func (p holderPopulation) At(db recpm.ReadOnlyKVStore, i int64) (recpm.Address, error) {
	return p.tokens.HolderAt(db, i)
}

func (p holderPopulation) Weight(db recpm.ReadOnlyKVStore, addr recpm.Address) (uint64, error) {
	return p.tokens.Balance(db, addr)
}

func (p holderPopulation) Basis(db recpm.ReadOnlyKVStore) (uint64, error) {
	return p.tokens.TotalSupply(db)
}

func (p holderPopulation) Pay(db recpm.KVStore, addr recpm.Address, amount uint64) error {
	return p.tokens.AddVoteCredit(db, addr, amount)
}

func (p holderPopulation) Finish(recpm.KVStore) error {
	return nil
}

// projectPopulation are all listed projects, weighted by weekly upvotes.
// Shares are minted as new tokens and the tallies reset once the run
// completes.
type projectPopulation struct {
	votes  *vote.Controller
	tokens *token.Controller
}

var _ Population = projectPopulation{}

// NewProjectPopulation returns the population of the token payout.
func NewProjectPopulation(votes *vote.Controller, tokens *token.Controller) Population {
	return projectPopulation{votes: votes, tokens: tokens}
}

func (p projectPopulation) Count(db recpm.ReadOnlyKVStore) (int64, error) {
	return p.votes.ProjectCount(db)
}

func (p projectPopulation) At(db recpm.ReadOnlyKVStore, i int64) (recpm.Address, error) {
	return p.votes.ProjectAt(db, i)
}

func (p projectPopulation) Weight(db recpm.ReadOnlyKVStore, addr recpm.Address) (uint64, error) {
	return p.votes.Upvotes(db, addr)
}

func (p projectPopulation) Basis(db recpm.ReadOnlyKVStore) (uint64, error) {
	return p.votes.TotalUpvotes(db)
}

func (p projectPopulation) Pay(db recpm.KVStore, addr recpm.Address, amount uint64) error {
	return p.tokens.Mint(db, addr, amount)
}

func (p projectPopulation) Finish(db recpm.KVStore) error {
	return p.votes.ResetUpvotes(db)
}
