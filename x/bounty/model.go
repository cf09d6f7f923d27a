// Package bounty implements an escrowed bounty system on top of the token
// ledger. Anyone can open a bounty on a registered project, anyone can add
// funds to it and anyone can claim it. The bounty creator decides which
// claim wins. Once the deadline passed without acceptance every contributor
// can reclaim its own share.
package bounty

import (
	"fmt"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
)

// Bounty is a single escrow with its full contribution history. It moves
// through exactly one of three states, Active first, then either Claimed or
// Refunded, both terminal.
type Bounty struct {
	Project recpm.Address
	Creator recpm.Address
	// Deadline is the block height after which contributors may reclaim
	// their shares.
	Deadline int64
	// Total is the sum of all contributions, the amount a successful
	// claimer is paid.
	Total uint64
	Active bool
	// Claimed is set when the creator accepted a claim.
	Claimed bool
	// Refunded is set by the first refund. Individual contributors keep
	// settling their own shares afterwards.
	Refunded bool
	// Contributions holds one entry per contributor, the creator's
	// deposit first. Repeated funding by the same address is merged into
	// its existing entry.
	Contributions []*Contribution
}

var _ orm.Model = (*Bounty)(nil)

func (b *Bounty) Validate() error {
	if err := b.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if err := b.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if b.Total == 0 {
		return errors.Wrap(errors.ErrAmount, "zero total")
	}
	if len(b.Contributions) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no contributions")
	}
	return nil
}

// contribution returns the entry of the given contributor or nil.
func (b *Bounty) contribution(addr recpm.Address) *Contribution {
	for _, c := range b.Contributions {
		if c.Contributor.Equals(addr) {
			return c
		}
	}
	return nil
}

// Contribution is the refundable share of a single contributor.
type Contribution struct {
	Contributor recpm.Address
	Amount      uint64
	Refunded    bool
}

// Claim is a request to be paid out a bounty. Claims are never deduplicated
// or validated beyond the bounty being active, picking the winner is the
// creator's call.
type Claim struct {
	BountyID   uint64
	Claimer    recpm.Address
	Successful bool
}

var _ orm.Model = (*Claim)(nil)

func (c *Claim) Validate() error {
	if c.BountyID == 0 {
		return errors.Wrap(errors.ErrEmpty, "bounty id")
	}
	if err := c.Claimer.Validate(); err != nil {
		return errors.Wrap(err, "claimer")
	}
	return nil
}

func NewBountyBucket() orm.ModelBucket {
	return orm.NewModelBucket("bounty")
}

func NewClaimBucket() orm.ModelBucket {
	return orm.NewModelBucket("claim")
}

// entityKey builds the bucket key of a bounty or claim, the project address
// followed by the big endian encoded sequence value.
func entityKey(project recpm.Address, id uint64) []byte {
	return append([]byte(project), orm.EncodeSequence(int64(id))...)
}

// bountySeq numbers bounties per project, starting at 1.
func bountySeq(project recpm.Address) orm.Sequence {
	return orm.NewSequence("bounty", fmt.Sprintf("id:%s", project))
}

// claimSeq numbers claims per project, starting at 1.
func claimSeq(project recpm.Address) orm.Sequence {
	return orm.NewSequence("claim", fmt.Sprintf("id:%s", project))
}

// EscrowAddress is the distinguished account holding the funds of a single
// bounty until it is claimed or refunded.
func EscrowAddress(project recpm.Address, id uint64) recpm.Address {
	return recpm.NewCondition("bounty", "escrow", entityKey(project, id)).Address()
}
