package distribution

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
)

// RunGuard vetoes an operation while a distribution run is mid-flight. The
// token controller consults the votes run guard before moving balances, the
// vote controller consults the tokens run guard before increasing tallies.
// Both protect the frozen run basis from changing under a resumed run.
type RunGuard struct {
	runs orm.ModelBucket
	key  []byte
}

// NewVotesRunGuard guards against a mid-flight vote credit payout.
func NewVotesRunGuard() RunGuard {
	return RunGuard{runs: NewRunBucket(), key: votesRunKey}
}

// NewTokensRunGuard guards against a mid-flight token payout.
func NewTokensRunGuard() RunGuard {
	return RunGuard{runs: NewRunBucket(), key: tokensRunKey}
}

// Check returns ErrInProgress while the guarded run is mid-flight.
func (g RunGuard) Check(db recpm.KVStore) error {
	run, err := loadRun(db, g.runs, g.key)
	if err != nil {
		return err
	}
	if run.InProgress {
		return errors.Wrapf(ErrInProgress, "page %d", run.PageIndex)
	}
	return nil
}
