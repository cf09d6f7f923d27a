package token

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

var _ recpm.Msg = (*SendMsg)(nil)
var _ recpm.Msg = (*ApproveMsg)(nil)
var _ recpm.Msg = (*TransferFromMsg)(nil)
var _ recpm.Msg = (*BurnMsg)(nil)

// SendMsg moves tokens between two accounts. If Source is empty the main
// signer is used.
type SendMsg struct {
	Source      recpm.Address
	Destination recpm.Address
	Amount      uint64
}

func (m *SendMsg) Path() string {
	return "token/send"
}

func (m *SendMsg) Validate() error {
	if len(m.Source) != 0 {
		if err := m.Source.Validate(); err != nil {
			return errors.Wrap(err, "source")
		}
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// ApproveMsg allows the spender to transfer up to Amount out of the signer
// account. A later approval overwrites an earlier one.
type ApproveMsg struct {
	Spender recpm.Address
	Amount  uint64
}

func (m *ApproveMsg) Path() string {
	return "token/approve"
}

func (m *ApproveMsg) Validate() error {
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	return nil
}

// TransferFromMsg moves tokens out of the source account using the signer's
// allowance.
type TransferFromMsg struct {
	Source      recpm.Address
	Destination recpm.Address
	Amount      uint64
}

func (m *TransferFromMsg) Path() string {
	return "token/transferfrom"
}

func (m *TransferFromMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// BurnMsg destroys tokens from the admin account, shrinking the total
// supply.
type BurnMsg struct {
	Amount uint64
}

func (m *BurnMsg) Path() string {
	return "token/burn"
}

func (m *BurnMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}
