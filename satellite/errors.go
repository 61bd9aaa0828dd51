package satellite

import "errors"

var (
	// ErrUnauthorized indicates a balance-mutating call from anyone but the
	// owning position registry.
	ErrUnauthorized = errors.New("satellite: unauthorized")

	// ErrDisabled indicates use of the permanently disabled public
	// transfer/approval surface.
	ErrDisabled = errors.New("satellite: method disabled")

	// ErrInvalidInitialization indicates a second initialization attempt.
	ErrInvalidInitialization = errors.New("satellite: invalid initialization")

	// ErrZeroAddressCheck indicates a zero owner address at initialization.
	ErrZeroAddressCheck = errors.New("satellite: zero address")

	// ErrInsufficientBalance indicates a burn or transfer exceeding the
	// holder's mirrored balance.
	ErrInsufficientBalance = errors.New("satellite: insufficient balance")
)
