package bounty

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

var _ recpm.Msg = (*CreateMsg)(nil)
var _ recpm.Msg = (*FundMsg)(nil)
var _ recpm.Msg = (*ClaimMsg)(nil)
var _ recpm.Msg = (*AcceptMsg)(nil)
var _ recpm.Msg = (*RefundMsg)(nil)

// CreateMsg opens a new bounty on a registered project. The signer becomes
// the creator and its deposit is the first contribution.
type CreateMsg struct {
	Project recpm.Address
	Amount  uint64
	// DeadlineHeight is the block height after which the bounty becomes
	// refundable. It must be strictly in the future.
	DeadlineHeight int64
}

func (m *CreateMsg) Path() string {
	return "bounty/create"
}

func (m *CreateMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if m.DeadlineHeight <= 0 {
		return errors.Wrap(ErrInvalidDeadline, "not positive")
	}
	return nil
}

// FundMsg adds the signer's deposit to an active bounty.
type FundMsg struct {
	Project  recpm.Address
	BountyID uint64
	Amount   uint64
}

func (m *FundMsg) Path() string {
	return "bounty/fund"
}

func (m *FundMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if m.BountyID == 0 {
		return errors.Wrap(errors.ErrEmpty, "bounty id")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// ClaimMsg registers the signer's claim on an active bounty.
type ClaimMsg struct {
	Project  recpm.Address
	BountyID uint64
}

func (m *ClaimMsg) Path() string {
	return "bounty/claim"
}

func (m *ClaimMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if m.BountyID == 0 {
		return errors.Wrap(errors.ErrEmpty, "bounty id")
	}
	return nil
}

// AcceptMsg pays the full bounty amount to the claimer. Only the bounty
// creator may send it.
type AcceptMsg struct {
	Project recpm.Address
	ClaimID uint64
}

func (m *AcceptMsg) Path() string {
	return "bounty/accept"
}

func (m *AcceptMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if m.ClaimID == 0 {
		return errors.Wrap(errors.ErrEmpty, "claim id")
	}
	return nil
}

// RefundMsg pays the signer's own contribution back out of an expired
// bounty escrow. Every contributor settles individually.
type RefundMsg struct {
	Project  recpm.Address
	BountyID uint64
}

func (m *RefundMsg) Path() string {
	return "bounty/refund"
}

func (m *RefundMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if m.BountyID == 0 {
		return errors.Wrap(errors.ErrEmpty, "bounty id")
	}
	return nil
}
