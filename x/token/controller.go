package token

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
)

// Guard can veto balance mutations. The distribution engine uses it to
// freeze balances while a vote distribution run is mid-flight.
type Guard interface {
	Check(db recpm.KVStore) error
}

// supplyKey is where the total supply counter is persisted.
var supplyKey = []byte("_v.token:supply")

// Controller implements all token moving logic. Handlers of this and other
// extensions go through the controller so that every balance change enforces
// the same rules.
type Controller struct {
	accounts orm.ModelBucket
	allows   orm.ModelBucket
	holders  orm.Registry
	guard    Guard
}

// NewController returns a token controller. The guard may be nil, in which
// case balance mutations are never vetoed.
func NewController(guard Guard) *Controller {
	return &Controller{
		accounts: NewAccountBucket(),
		allows:   NewAllowanceBucket(),
		holders:  NewHolderRegistry(),
		guard:    guard,
	}
}

// WithGuard returns a copy of the controller using the given guard. It
// exists to break the construction cycle: the distribution engine needs the
// controller and the controller needs the distribution run state.
func (c *Controller) WithGuard(guard Guard) *Controller {
	cpy := *c
	cpy.guard = guard
	return &cpy
}

func (c *Controller) checkGuard(db recpm.KVStore) error {
	if c.guard == nil {
		return nil
	}
	return c.guard.Check(db)
}

// Account loads the state of an address. A missing account is returned as a
// zero value, accounts exist implicitly.
func (c *Controller) Account(db recpm.ReadOnlyKVStore, addr recpm.Address) (*Account, error) {
	var acct Account
	switch err := c.accounts.One(db, addr, &acct); {
	case err == nil:
		return &acct, nil
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, err
	}
}

// Balance returns the spendable amount of an address.
func (c *Controller) Balance(db recpm.ReadOnlyKVStore, addr recpm.Address) (uint64, error) {
	acct, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// TotalSupply returns the sum of all balances.
func (c *Controller) TotalSupply(db recpm.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(supplyKey)
	if err != nil {
		return 0, err
	}
	return uint64(orm.DecodeSequence(raw)), nil
}

func (c *Controller) setSupply(db recpm.KVStore, supply uint64) error {
	return db.Set(supplyKey, orm.EncodeSequence(int64(supply)))
}

// MoveTokens transfers the amount between two accounts. The destination is
// registered as a holder on its first positive balance.
func (c *Controller) MoveTokens(db recpm.KVStore, src, dest recpm.Address, amount uint64) error {
	if err := c.checkGuard(db); err != nil {
		return err
	}
	sender, err := c.Account(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, want %d", sender.Balance, amount)
	}
	recipient, err := c.Account(db, dest)
	if err != nil {
		return err
	}
	sender.Balance -= amount
	recipient.Balance += amount
	if err := c.accounts.Put(db, src, sender); err != nil {
		return err
	}
	if err := c.accounts.Put(db, dest, recipient); err != nil {
		return err
	}
	if recipient.Balance > 0 {
		return c.holders.Append(db, dest)
	}
	return nil
}

// Mint creates new tokens on the destination account, growing the total
// supply. Minting is how the token distribution pays out, it bypasses the
// balance guard.
func (c *Controller) Mint(db recpm.KVStore, dest recpm.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	recipient, err := c.Account(db, dest)
	if err != nil {
		return err
	}
	recipient.Balance += amount
	if err := c.accounts.Put(db, dest, recipient); err != nil {
		return err
	}
	supply, err := c.TotalSupply(db)
	if err != nil {
		return err
	}
	if err := c.setSupply(db, supply+amount); err != nil {
		return err
	}
	return c.holders.Append(db, dest)
}

// Burn destroys tokens from the given account, shrinking the total supply.
func (c *Controller) Burn(db recpm.KVStore, src recpm.Address, amount uint64) error {
	if err := c.checkGuard(db); err != nil {
		return err
	}
	acct, err := c.Account(db, src)
	if err != nil {
		return err
	}
	if acct.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, want %d", acct.Balance, amount)
	}
	supply, err := c.TotalSupply(db)
	if err != nil {
		return err
	}
	if supply < amount {
		return errors.Wrapf(ErrInsufficientSupply, "supply %d, want %d", supply, amount)
	}
	acct.Balance -= amount
	if err := c.accounts.Put(db, src, acct); err != nil {
		return err
	}
	return c.setSupply(db, supply-amount)
}

// SetAllowance overwrites what the spender may transfer out of the owner
// account.
func (c *Controller) SetAllowance(db recpm.KVStore, owner, spender recpm.Address, amount uint64) error {
	return c.allows.Put(db, allowanceKey(owner, spender), &Allowance{Amount: amount})
}

// Allowance returns what the spender may still transfer out of the owner
// account.
func (c *Controller) Allowance(db recpm.ReadOnlyKVStore, owner, spender recpm.Address) (uint64, error) {
	var a Allowance
	switch err := c.allows.One(db, allowanceKey(owner, spender), &a); {
	case err == nil:
		return a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// ConsumeAllowance decrements the allowance by the transferred amount.
func (c *Controller) ConsumeAllowance(db recpm.KVStore, owner, spender recpm.Address, amount uint64) error {
	current, err := c.Allowance(db, owner, spender)
	if err != nil {
		return err
	}
	if current < amount {
		return errors.Wrapf(ErrInsufficientAllowance, "allowance %d, want %d", current, amount)
	}
	return c.SetAllowance(db, owner, spender, current-amount)
}

// VoteCredit returns the votes the address may still cast.
func (c *Controller) VoteCredit(db recpm.ReadOnlyKVStore, addr recpm.Address) (uint64, error) {
	acct, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return acct.VoteCredit, nil
}

// AddVoteCredit grants votes to the address.
func (c *Controller) AddVoteCredit(db recpm.KVStore, addr recpm.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	acct.VoteCredit += amount
	return c.accounts.Put(db, addr, acct)
}

// SpendVoteCredit removes votes from the address.
func (c *Controller) SpendVoteCredit(db recpm.KVStore, addr recpm.Address, amount uint64) error {
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if acct.VoteCredit < amount {
		return errors.Wrapf(errors.ErrAmount, "vote credit %d, want %d", acct.VoteCredit, amount)
	}
	acct.VoteCredit -= amount
	return c.accounts.Put(db, addr, acct)
}

// LockedBalance returns the amount the address contributed to unsettled
// bounties.
func (c *Controller) LockedBalance(db recpm.ReadOnlyKVStore, addr recpm.Address) (uint64, error) {
	acct, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return acct.Locked, nil
}

// AddLocked increases the bounty locked aggregate of the address.
func (c *Controller) AddLocked(db recpm.KVStore, addr recpm.Address, amount uint64) error {
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	acct.Locked += amount
	return c.accounts.Put(db, addr, acct)
}

// ReleaseLocked decreases the bounty locked aggregate of the address.
func (c *Controller) ReleaseLocked(db recpm.KVStore, addr recpm.Address, amount uint64) error {
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if acct.Locked < amount {
		return errors.Wrapf(errors.ErrState, "locked %d, want %d", acct.Locked, amount)
	}
	acct.Locked -= amount
	return c.accounts.Put(db, addr, acct)
}

// HolderCount returns how many addresses ever held a positive balance.
func (c *Controller) HolderCount(db recpm.ReadOnlyKVStore) (int64, error) {
	return c.holders.Count(db)
}

// HolderAt returns the holder registered at the given position.
func (c *Controller) HolderAt(db recpm.ReadOnlyKVStore, i int64) (recpm.Address, error) {
	raw, err := c.holders.At(db, i)
	return recpm.Address(raw), err
}

// RegisterHolder appends the address to the holder registry. Registration
// is idempotent.
func (c *Controller) RegisterHolder(db recpm.KVStore, addr recpm.Address) error {
	return c.holders.Append(db, addr)
}
