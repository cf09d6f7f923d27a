package vote

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ recpm.Initializer = (*Initializer)(nil)

// FromGenesis registers the projects listed in the genesis.
func (*Initializer) FromGenesis(opts recpm.Options, db recpm.KVStore) error {
	var genesis struct {
		Projects []recpm.Address `json:"projects"`
	}
	if err := opts.ReadOptions("vote", &genesis); err != nil {
		return errors.Wrap(err, "read vote options")
	}
	registry := NewProjectRegistry()
	for i, project := range genesis.Projects {
		if err := project.Validate(); err != nil {
			return errors.Wrapf(err, "project #%d", i)
		}
		if err := registry.Append(db, project); err != nil {
			return errors.Wrapf(err, "project #%d", i)
		}
	}
	return nil
}
