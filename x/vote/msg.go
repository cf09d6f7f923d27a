package vote

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

var _ recpm.Msg = (*RegisterProjectMsg)(nil)
var _ recpm.Msg = (*VoteMsg)(nil)

// RegisterProjectMsg adds an address to the project registry. Registration
// is open to any caller and idempotent.
type RegisterProjectMsg struct {
	Project recpm.Address
}

func (m *RegisterProjectMsg) Path() string {
	return "vote/register"
}

func (m *RegisterProjectMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	return nil
}

// VoteMsg spends the signer's vote credit on a registered project.
type VoteMsg struct {
	Project recpm.Address
	Votes   uint64
}

func (m *VoteMsg) Path() string {
	return "vote/cast"
}

func (m *VoteMsg) Validate() error {
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	if m.Votes == 0 {
		return errors.Wrap(errors.ErrAmount, "zero votes")
	}
	return nil
}
