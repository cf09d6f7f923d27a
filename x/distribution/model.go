/*
Package distribution implements the paginated proportional payout engine.

A distribution spreads a pool of value over a weighted population, the token
holders weighted by balance for the vote payout, or the listed projects
weighted by upvotes for the token payout. Since a population can outgrow the
per call step budget, a run is split into pages and resumed across calls.
The denominator and the pool are frozen on the first page and the run state
gates any operation that could change them mid-flight.
*/
package distribution

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
)

// Run is the persisted state of one distribution instance. Mid-flight is an
// explicit state, a run with InProgress unset is idle between distributions.
type Run struct {
	// InProgress is true while a started run has unprocessed pages left.
	InProgress bool
	// PageIndex is the next page to process.
	PageIndex int64
	// PageSize is the page size captured when the run started. Config
	// changes do not affect a run that is already mid-flight.
	PageSize int64
	// Basis is the frozen denominator of the proportional share, the
	// total supply or the total upvotes at run start.
	Basis uint64
	// Pool is the frozen amount being spread over this run.
	Pool uint64
	// LastCompleted is when the previous run finished. The cooldown is
	// measured against it.
	LastCompleted recpm.UnixTime
}

var _ orm.Model = (*Run)(nil)

func (r *Run) Validate() error {
	if r.InProgress && r.PageSize <= 0 {
		return errors.Wrap(errors.ErrState, "mid-flight run without page size")
	}
	return nil
}

// Configuration is the distribution extension setup, kept as a database
// singleton.
type Configuration struct {
	// Admin is the only address allowed to run distributions and change
	// the page size.
	Admin recpm.Address `json:"admin"`
	// Period is the cooldown between two runs of the same instance.
	Period recpm.UnixDuration `json:"period"`
	// PageSize caps how many population entries one call processes.
	PageSize int64 `json:"page_size"`
}

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if c.Period <= 0 {
		return errors.Wrap(errors.ErrInput, "period")
	}
	if c.PageSize <= 0 {
		return errors.Wrap(errors.ErrInput, "page size")
	}
	return nil
}

var (
	// votesRunKey addresses the vote credit payout instance.
	votesRunKey = []byte("votes")
	// tokensRunKey addresses the token supply payout instance.
	tokensRunKey = []byte("tokens")
)

// NewRunBucket returns the bucket keeping the run state of both instances.
func NewRunBucket() orm.ModelBucket {
	return orm.NewModelBucket("distrun")
}

func loadRun(db recpm.ReadOnlyKVStore, runs orm.ModelBucket, key []byte) (*Run, error) {
	var run Run
	switch err := runs.One(db, key, &run); {
	case err == nil:
		return &run, nil
	case errors.ErrNotFound.Is(err):
		return &Run{}, nil
	default:
		return nil, err
	}
}
