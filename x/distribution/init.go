package distribution

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ recpm.Initializer = (*Initializer)(nil)

// FromGenesis initializes the distribution configuration and the optional
// initial run timestamps.
func (*Initializer) FromGenesis(opts recpm.Options, db recpm.KVStore) error {
	if err := gconf.InitConfig(db, opts, "distribution", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		VotesCompleted  recpm.UnixTime `json:"votes_completed"`
		TokensCompleted recpm.UnixTime `json:"tokens_completed"`
	}
	if err := opts.ReadOptions("distribution", &genesis); err != nil {
		return errors.Wrap(err, "read distribution options")
	}

	runs := NewRunBucket()
	if !genesis.VotesCompleted.IsZero() {
		run := Run{LastCompleted: genesis.VotesCompleted}
		if err := runs.Put(db, votesRunKey, &run); err != nil {
			return errors.Wrap(err, "votes run")
		}
	}
	if !genesis.TokensCompleted.IsZero() {
		run := Run{LastCompleted: genesis.TokensCompleted}
		if err := runs.Put(db, tokensRunKey, &run); err != nil {
			return errors.Wrap(err, "tokens run")
		}
	}
	return nil
}
