package wallet

import "errors"

var (
	// ErrInvalidTopupAmount rejects non-positive credit top-ups. The
	// per-request cap (100 credits) is enforced by the validation layer,
	// not here.
	ErrInvalidTopupAmount = errors.New("top-up credits must be a positive amount")

	// ErrInsufficientCredits is returned when consuming from a wallet
	// with no balance.
	ErrInsufficientCredits = errors.New("insufficient wallet credits")
)
