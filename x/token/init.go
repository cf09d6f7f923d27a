package token

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ recpm.Initializer = (*Initializer)(nil)

// FromGenesis initializes the token configuration and the initial account
// balances.
func (*Initializer) FromGenesis(opts recpm.Options, db recpm.KVStore) error {
	if err := gconf.InitConfig(db, opts, "token", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		Accounts []struct {
			Address recpm.Address `json:"address"`
			Balance uint64        `json:"balance"`
		} `json:"accounts"`
	}
	if err := opts.ReadOptions("token", &genesis); err != nil {
		return errors.Wrap(err, "read token options")
	}

	ctrl := NewController(nil)
	for i, acct := range genesis.Accounts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d address", i)
		}
		if err := ctrl.Mint(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
