package token

import (
	"github.com/recpm-network/recpm/errors"
)

var (
	// ErrInsufficientFunds is returned when the source account balance
	// does not cover the requested amount.
	ErrInsufficientFunds = errors.Register(1000, "insufficient funds")

	// ErrInsufficientAllowance is returned when a transfer-from request
	// exceeds the allowance granted to the spender.
	ErrInsufficientAllowance = errors.Register(1001, "insufficient allowance")

	// ErrInsufficientSupply is returned when a burn would shrink the
	// total supply below zero.
	ErrInsufficientSupply = errors.Register(1002, "insufficient supply")
)
