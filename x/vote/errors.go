package vote

import (
	"github.com/recpm-network/recpm/errors"
)

var (
	// ErrNotRegistered is returned when the referenced address is not in
	// the project registry.
	ErrNotRegistered = errors.Register(1100, "project not registered")

	// ErrInsufficientCredit is returned when the voter does not have
	// enough vote credit for the requested number of votes.
	ErrInsufficientCredit = errors.Register(1101, "insufficient vote credit")
)
