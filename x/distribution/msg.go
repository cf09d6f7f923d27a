package distribution

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

var _ recpm.Msg = (*DistributeVotesMsg)(nil)
var _ recpm.Msg = (*DistributeTokensMsg)(nil)
var _ recpm.Msg = (*SetPageSizeMsg)(nil)

// DistributeVotesMsg spreads the pool as vote credit over all token holders,
// proportional to their balance. The operator keeps sending this message
// until the run reports completion.
type DistributeVotesMsg struct {
	// Pool is the total vote credit to spread. Ignored while a run is
	// mid-flight, the value frozen at run start is used instead.
	Pool uint64
}

func (m *DistributeVotesMsg) Path() string {
	return "distribution/votes"
}

func (m *DistributeVotesMsg) Validate() error {
	if m.Pool == 0 {
		return errors.Wrap(errors.ErrAmount, "zero pool")
	}
	return nil
}

// DistributeTokensMsg mints the pool over all listed projects, proportional
// to their weekly upvotes. Completing the run resets all upvote tallies.
type DistributeTokensMsg struct {
	// Pool is the total token amount to mint. Ignored while a run is
	// mid-flight.
	Pool uint64
}

func (m *DistributeTokensMsg) Path() string {
	return "distribution/tokens"
}

func (m *DistributeTokensMsg) Validate() error {
	if m.Pool == 0 {
		return errors.Wrap(errors.ErrAmount, "zero pool")
	}
	return nil
}

// SetPageSizeMsg changes how many population entries a single distribution
// call processes.
type SetPageSizeMsg struct {
	PageSize int64
}

func (m *SetPageSizeMsg) Path() string {
	return "distribution/pagesize"
}

func (m *SetPageSizeMsg) Validate() error {
	if m.PageSize <= 0 {
		return errors.Wrap(errors.ErrAmount, "page size must be positive")
	}
	return nil
}
