package bounty

import (
	"github.com/recpm-network/recpm/errors"
)

var (
	// ErrInvalidBounty is returned when a referenced bounty does not
	// exist or is not in the state the operation requires.
	ErrInvalidBounty = errors.Register(1300, "invalid bounty")

	// ErrInvalidClaim is returned when a referenced claim does not exist.
	ErrInvalidClaim = errors.Register(1301, "invalid claim")

	// ErrNotExpired is returned when a refund is requested before the
	// bounty deadline passed.
	ErrNotExpired = errors.Register(1302, "bounty not expired")

	// ErrAlreadyClaimed is returned when a refund is requested on a
	// bounty that was paid out to a claimer.
	ErrAlreadyClaimed = errors.Register(1303, "bounty already claimed")

	// ErrNotContributor is returned when a refund is requested by an
	// address that never funded the bounty.
	ErrNotContributor = errors.Register(1304, "not a contributor")

	// ErrAlreadyRefunded is returned when a contributor requests a
	// second refund of the same share.
	ErrAlreadyRefunded = errors.Register(1305, "share already refunded")

	// ErrInvalidDeadline is returned when a bounty deadline is not
	// strictly in the future.
	ErrInvalidDeadline = errors.Register(1306, "invalid deadline")
)
