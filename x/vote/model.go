/*
Package vote implements the voting subsystem.

Projects register themselves to become eligible for votes and bounties.
Voters spend the vote credit granted by the vote distribution, accumulating
per project and global weekly upvote tallies. The token distribution
consumes and resets those tallies.
*/
package vote

import (
	"github.com/recpm-network/recpm/orm"
)

// Stats keeps the weekly upvote tally of a single project.
type Stats struct {
	Upvotes uint64
}

var _ orm.Model = (*Stats)(nil)

func (s *Stats) Validate() error {
	return nil
}

// NewStatsBucket returns the bucket keeping per project tallies, keyed by
// project address.
func NewStatsBucket() orm.ModelBucket {
	return orm.NewModelBucket("proj")
}

// NewProjectRegistry returns the append-only list of all registered project
// addresses.
func NewProjectRegistry() orm.Registry {
	return orm.NewRegistry("projects")
}
