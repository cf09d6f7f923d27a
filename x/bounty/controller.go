package bounty

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
	"github.com/recpm-network/recpm/x/token"
	"github.com/recpm-network/recpm/x/vote"
)

// Controller implements the bounty state machine. All value movements go
// through the token controller so the distribution gating applies to escrow
// transfers as well.
type Controller struct {
	bounties orm.ModelBucket
	claims   orm.ModelBucket
	tokens   *token.Controller
	votes    *vote.Controller
}

func NewController(tokens *token.Controller, votes *vote.Controller) *Controller {
	return &Controller{
		bounties: NewBountyBucket(),
		claims:   NewClaimBucket(),
		tokens:   tokens,
		votes:    votes,
	}
}

// GetBounty returns the bounty with the given per project id.
func (c *Controller) GetBounty(db recpm.ReadOnlyKVStore, project recpm.Address, id uint64) (*Bounty, error) {
	var b Bounty
	if err := c.bounties.One(db, entityKey(project, id), &b); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrInvalidBounty, "no such bounty")
		}
		return nil, err
	}
	return &b, nil
}

// GetClaim returns the claim with the given per project id.
func (c *Controller) GetClaim(db recpm.ReadOnlyKVStore, project recpm.Address, id uint64) (*Claim, error) {
	var cl Claim
	if err := c.claims.One(db, entityKey(project, id), &cl); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrInvalidClaim, "no such claim")
		}
		return nil, err
	}
	return &cl, nil
}

// BountyCount returns how many bounties were created for the project.
func (c *Controller) BountyCount(db recpm.ReadOnlyKVStore, project recpm.Address) (int64, error) {
	seq := bountySeq(project)
	n, _, err := seq.Latest(db)
	return n, err
}

// ClaimCount returns how many claims were filed for the project.
func (c *Controller) ClaimCount(db recpm.ReadOnlyKVStore, project recpm.Address) (int64, error) {
	seq := claimSeq(project)
	n, _, err := seq.Latest(db)
	return n, err
}

// Create opens a new bounty and escrows the creator's deposit. The deadline
// must be strictly above the given current height. The new bounty id is
// returned.
func (c *Controller) Create(db recpm.KVStore, creator, project recpm.Address, amount uint64, deadline, height int64) (uint64, error) {
	switch registered, err := c.votes.IsRegistered(db, project); {
	case err != nil:
		return 0, errors.Wrap(err, "registry")
	case !registered:
		return 0, errors.Wrap(vote.ErrNotRegistered, project.String())
	}
	if deadline <= height {
		return 0, errors.Wrapf(ErrInvalidDeadline, "deadline %d not above height %d", deadline, height)
	}
	seq := bountySeq(project)
	id, err := seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "bounty sequence")
	}
	if err := c.tokens.MoveTokens(db, creator, EscrowAddress(project, uint64(id)), amount); err != nil {
		return 0, errors.Wrap(err, "escrow deposit")
	}
	if err := c.tokens.AddLocked(db, creator, amount); err != nil {
		return 0, errors.Wrap(err, "lock")
	}
	b := Bounty{
		Project:  project,
		Creator:  creator,
		Deadline: deadline,
		Total:    amount,
		Active:   true,
		Contributions: []*Contribution{
			{Contributor: creator, Amount: amount},
		},
	}
	if err := c.bounties.Put(db, entityKey(project, uint64(id)), &b); err != nil {
		return 0, errors.Wrap(err, "save bounty")
	}
	return uint64(id), nil
}

// Fund adds the contributor's deposit to an active bounty escrow.
func (c *Controller) Fund(db recpm.KVStore, contributor, project recpm.Address, id, amount uint64) error {
	b, err := c.GetBounty(db, project, id)
	if err != nil {
		return err
	}
	if !b.Active {
		return errors.Wrap(ErrInvalidBounty, "not active")
	}
	if err := c.tokens.MoveTokens(db, contributor, EscrowAddress(project, id), amount); err != nil {
		return errors.Wrap(err, "escrow deposit")
	}
	if err := c.tokens.AddLocked(db, contributor, amount); err != nil {
		return errors.Wrap(err, "lock")
	}
	if cb := b.contribution(contributor); cb != nil {
		cb.Amount += amount
	} else {
		b.Contributions = append(b.Contributions, &Contribution{
			Contributor: contributor,
			Amount:      amount,
		})
	}
	b.Total += amount
	if err := c.bounties.Put(db, entityKey(project, id), b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	return nil
}

// AddClaim files a claim on an active bounty and returns the claim id.
func (c *Controller) AddClaim(db recpm.KVStore, claimer, project recpm.Address, bountyID uint64) (uint64, error) {
	b, err := c.GetBounty(db, project, bountyID)
	if err != nil {
		return 0, err
	}
	if !b.Active {
		return 0, errors.Wrap(ErrInvalidBounty, "not active")
	}
	seq := claimSeq(project)
	id, err := seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "claim sequence")
	}
	cl := Claim{
		BountyID: bountyID,
		Claimer:  claimer,
	}
	if err := c.claims.Put(db, entityKey(project, uint64(id)), &cl); err != nil {
		return 0, errors.Wrap(err, "save claim")
	}
	return uint64(id), nil
}

// Accept pays the full bounty escrow to the claimer. Only the bounty
// creator may accept. Accepting settles the bounty, the contributors'
// locked balances are released with nothing paid back.
func (c *Controller) Accept(db recpm.KVStore, caller, project recpm.Address, claimID uint64) error {
	cl, err := c.GetClaim(db, project, claimID)
	if err != nil {
		return err
	}
	b, err := c.GetBounty(db, project, cl.BountyID)
	if err != nil {
		return err
	}
	if !b.Active {
		return errors.Wrap(ErrInvalidBounty, "not active")
	}
	if !b.Creator.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the creator can accept")
	}
	if err := c.tokens.MoveTokens(db, EscrowAddress(project, cl.BountyID), cl.Claimer, b.Total); err != nil {
		return errors.Wrap(err, "payout")
	}
	for _, contrib := range b.Contributions {
		if err := c.tokens.ReleaseLocked(db, contrib.Contributor, contrib.Amount); err != nil {
			return errors.Wrap(err, "release lock")
		}
	}
	cl.Successful = true
	if err := c.claims.Put(db, entityKey(project, claimID), cl); err != nil {
		return errors.Wrap(err, "save claim")
	}
	b.Active = false
	b.Claimed = true
	if err := c.bounties.Put(db, entityKey(project, cl.BountyID), b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	return nil
}

// Refund pays the caller's own contribution back out of the escrow. It is
// allowed once the bounty deadline passed without an accepted claim. The
// first refund settles the bounty itself, every contributor still reclaims
// its own share individually.
func (c *Controller) Refund(db recpm.KVStore, caller, project recpm.Address, id uint64, height int64) error {
	b, err := c.GetBounty(db, project, id)
	if err != nil {
		return err
	}
	if b.Claimed {
		return errors.Wrap(ErrAlreadyClaimed, "paid out")
	}
	if b.Active {
		if height < b.Deadline {
			return errors.Wrapf(ErrNotExpired, "refundable at height %d", b.Deadline)
		}
		b.Active = false
		b.Refunded = true
	}
	contrib := b.contribution(caller)
	if contrib == nil {
		return errors.Wrap(ErrNotContributor, caller.String())
	}
	if contrib.Refunded {
		return errors.Wrap(ErrAlreadyRefunded, caller.String())
	}
	if err := c.tokens.MoveTokens(db, EscrowAddress(project, id), caller, contrib.Amount); err != nil {
		return errors.Wrap(err, "refund")
	}
	if err := c.tokens.ReleaseLocked(db, caller, contrib.Amount); err != nil {
		return errors.Wrap(err, "release lock")
	}
	contrib.Refunded = true
	if err := c.bounties.Put(db, entityKey(project, id), b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	return nil
}
