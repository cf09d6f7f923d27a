package vote

import (
	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
	"github.com/recpm-network/recpm/x/token"
)

// Guard can veto vote casting. The distribution engine uses it to freeze
// the upvote tallies while a token distribution run is mid-flight.
type Guard interface {
	Check(db recpm.KVStore) error
}

// totalKey is where the global weekly upvote counter is persisted. It always
// equals the sum of all per project tallies.
var totalKey = []byte("_v.vote:totalupvotes")

// Controller implements the voting logic shared by the handlers and the
// distribution engine.
type Controller struct {
	projects orm.Registry
	stats    orm.ModelBucket
	tokens   *token.Controller
	guard    Guard
}

// NewController returns a vote controller. The guard may be nil, in which
// case vote casting is never vetoed.
func NewController(tokens *token.Controller, guard Guard) *Controller {
	return &Controller{
		projects: NewProjectRegistry(),
		stats:    NewStatsBucket(),
		tokens:   tokens,
		guard:    guard,
	}
}

// WithGuard returns a copy of the controller using the given guard.
func (c *Controller) WithGuard(guard Guard) *Controller {
	cpy := *c
	cpy.guard = guard
	return &cpy
}

// RegisterProject appends the address to the project registry. A second
// registration of the same address is a noop.
func (c *Controller) RegisterProject(db recpm.KVStore, project recpm.Address) error {
	return c.projects.Append(db, project)
}

// IsRegistered returns true if the address is a registered project.
func (c *Controller) IsRegistered(db recpm.ReadOnlyKVStore, project recpm.Address) (bool, error) {
	return c.projects.Has(db, project)
}

// ProjectCount returns the number of registered projects.
func (c *Controller) ProjectCount(db recpm.ReadOnlyKVStore) (int64, error) {
	return c.projects.Count(db)
}

// ProjectAt returns the project registered at the given position.
func (c *Controller) ProjectAt(db recpm.ReadOnlyKVStore, i int64) (recpm.Address, error) {
	raw, err := c.projects.At(db, i)
	return recpm.Address(raw), err
}

// Upvotes returns the weekly tally of a project.
func (c *Controller) Upvotes(db recpm.ReadOnlyKVStore, project recpm.Address) (uint64, error) {
	var s Stats
	switch err := c.stats.One(db, project, &s); {
	case err == nil:
		return s.Upvotes, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// TotalUpvotes returns the global weekly tally.
func (c *Controller) TotalUpvotes(db recpm.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(totalKey)
	if err != nil {
		return 0, err
	}
	return uint64(orm.DecodeSequence(raw)), nil
}

func (c *Controller) setTotalUpvotes(db recpm.KVStore, total uint64) error {
	return db.Set(totalKey, orm.EncodeSequence(int64(total)))
}

// CheckVote runs all vote preconditions without mutating any state.
func (c *Controller) CheckVote(db recpm.KVStore, voter, project recpm.Address, votes uint64) error {
	if c.guard != nil {
		if err := c.guard.Check(db); err != nil {
			return err
		}
	}
	ok, err := c.IsRegistered(db, project)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotRegistered, "project %s", project)
	}
	credit, err := c.tokens.VoteCredit(db, voter)
	if err != nil {
		return err
	}
	if credit < votes {
		return errors.Wrapf(ErrInsufficientCredit, "credit %d, want %d", credit, votes)
	}
	return nil
}

// CastVote spends the voter's credit on a registered project, moving it into
// the weekly tallies.
func (c *Controller) CastVote(db recpm.KVStore, voter, project recpm.Address, votes uint64) error {
	if err := c.CheckVote(db, voter, project, votes); err != nil {
		return err
	}
	if err := c.tokens.SpendVoteCredit(db, voter, votes); err != nil {
		return err
	}
	upvotes, err := c.Upvotes(db, project)
	if err != nil {
		return err
	}
	if err := c.stats.Put(db, project, &Stats{Upvotes: upvotes + votes}); err != nil {
		return err
	}
	total, err := c.TotalUpvotes(db)
	if err != nil {
		return err
	}
	return c.setTotalUpvotes(db, total+votes)
}

// ResetUpvotes zeroes every project tally and the global counter. It is run
// by the token distribution after a completed payout.
func (c *Controller) ResetUpvotes(db recpm.KVStore) error {
	count, err := c.projects.Count(db)
	if err != nil {
		return err
	}
	for i := int64(0); i < count; i++ {
		project, err := c.ProjectAt(db, i)
		if err != nil {
			return err
		}
		if err := c.stats.Put(db, project, &Stats{}); err != nil {
			return err
		}
	}
	return c.setTotalUpvotes(db, 0)
}
