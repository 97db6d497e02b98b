package market

import (
	"github.com/iov-one/bazaar/errors"
)

var (
	// ErrAdminOnly is returned when an administrative operation is
	// signed by anyone but the current administrator.
	ErrAdminOnly = errors.Register(1100, "administrator only")

	// ErrNotOwner is returned when the signer does not own the token,
	// or when the recorded seller no longer owns it at settlement.
	ErrNotOwner = errors.Register(1101, "not token owner")

	// ErrNoListing is returned when no listing exists for the token.
	ErrNoListing = errors.Register(1102, "listing not found")

	// ErrInvalidPrice is returned on a non-positive or malformed price.
	ErrInvalidPrice = errors.Register(1103, "invalid price")

	// ErrInvalidToken is returned on a malformed or unknown token ID.
	ErrInvalidToken = errors.Register(1104, "invalid token")

	// ErrInvalidURI is returned on an empty or oversized token URI.
	ErrInvalidURI = errors.Register(1105, "invalid URI")

	// ErrInvalidRoyalty is returned when the royalty exceeds the cap.
	ErrInvalidRoyalty = errors.Register(1106, "invalid royalty")

	// ErrInvalidTarget is returned on a transfer to a malformed or
	// forbidden address.
	ErrInvalidTarget = errors.Register(1107, "invalid transfer target")

	// ErrSelfTransfer is returned on a transfer to the current holder.
	ErrSelfTransfer = errors.Register(1108, "transfer to self")
)
