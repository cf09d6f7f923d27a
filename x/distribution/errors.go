package distribution

import (
	"github.com/recpm-network/recpm/errors"
)

var (
	// ErrCooldown is returned when a distribution is requested before
	// the period since the last completed run has passed.
	ErrCooldown = errors.Register(1200, "distribution cooldown active")

	// ErrNothingToDistribute is returned when the weight basis is zero,
	// there is no population share to compute.
	ErrNothingToDistribute = errors.Register(1201, "nothing to distribute")

	// ErrInProgress is returned when an operation conflicts with a
	// distribution run that is mid-flight.
	ErrInProgress = errors.Register(1202, "distribution in progress")
)
