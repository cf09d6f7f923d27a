package token

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
)

// Account keeps all value the ledger tracks for a single address. Accounts
// are created implicitly on first use and never removed, a zeroed account
// and a missing one are indistinguishable.
type Account struct {
	// Balance is the spendable amount, in the smallest token unit.
	Balance uint64
	// VoteCredit is the amount of votes this account may cast. It is
	// granted by the vote distribution and spent by voting.
	VoteCredit uint64
	// Locked is the total amount this account contributed to still
	// unsettled bounties. Informational aggregate, the value itself is
	// held on the escrow accounts.
	Locked uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	return nil
}

// Allowance records how much a spender may still transfer out of an owner
// account.
type Allowance struct {
	Amount uint64
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Validate() error {
	return nil
}

// Configuration is the token extension setup. It is loaded from the genesis
// and kept as a database singleton.
type Configuration struct {
	// Admin is the only address allowed to burn tokens and to run
	// distributions.
	Admin recpm.Address `json:"admin"`
	// Name is the human readable token name.
	Name string `json:"name"`
	// Symbol is the short ticker, for example RECPM.
	Symbol string `json:"symbol"`
	// Decimals declares how many decimal places the smallest unit is
	// shifted by.
	Decimals int32 `json:"decimals"`
}

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if c.Symbol == "" {
		return errors.Wrap(errors.ErrEmpty, "symbol")
	}
	if c.Decimals < 0 || c.Decimals > 18 {
		return errors.Wrap(errors.ErrInput, "decimals")
	}
	return nil
}

// NewAccountBucket returns the bucket keeping all accounts, keyed by
// address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("acct")
}

// NewAllowanceBucket returns the bucket keeping all allowances, keyed by the
// owner address concatenated with the spender address.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allow")
}

// NewHolderRegistry returns the append-only list of all addresses that ever
// held a positive balance.
func NewHolderRegistry() orm.Registry {
	return orm.NewRegistry("holders")
}

func allowanceKey(owner, spender recpm.Address) []byte {
	return append(append([]byte{}, owner...), spender...)
}
