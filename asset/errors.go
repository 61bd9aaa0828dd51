package asset

import "errors"

var (
	// ErrInvalidIsinCodeLength indicates an ISIN that is not exactly 12 characters.
	ErrInvalidIsinCodeLength = errors.New("asset: invalid ISIN code length")

	// ErrInvalidIsinCodeCharacter indicates a non-alphanumeric byte in an ISIN.
	ErrInvalidIsinCodeCharacter = errors.New("asset: invalid ISIN code character")

	// ErrInvalidUUIDLength indicates a transaction id that is not 36 characters.
	ErrInvalidUUIDLength = errors.New("asset: invalid UUID length")

	// ErrInvalidUUIDCharacter indicates a malformed byte in a transaction id.
	ErrInvalidUUIDCharacter = errors.New("asset: invalid UUID character")

	// ErrInvalidAddressLength indicates hex input that does not decode to 20 bytes.
	ErrInvalidAddressLength = errors.New("asset: invalid address length")
)
