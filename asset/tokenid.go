package asset

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// TokenIDSize is the length of a token id in bytes (a 256-bit integer).
	TokenIDSize = 32

	// IsinLength is the fixed length of an ISIN code.
	IsinLength = 12
)

// TokenID identifies a position in the ledger. It is a 256-bit integer
// stored big-endian; for ISIN-derived ids the low-order 12 bytes are the
// upper-cased ISIN characters.
type TokenID [TokenIDSize]byte

// ZeroTokenID is the absent token id.
var ZeroTokenID TokenID

// IsZero reports whether the token id is zero.
func (t TokenID) IsZero() bool { return t == ZeroTokenID }

// String returns the token id as lowercase hex with leading zeros trimmed.
func (t TokenID) String() string {
	s := new(big.Int).SetBytes(t[:]).Text(16)
	return s
}

// Hex returns the full 64-character hex representation.
func (t TokenID) Hex() string { return hex.EncodeToString(t[:]) }

// Big returns the token id as a big integer.
func (t TokenID) Big() *big.Int { return new(big.Int).SetBytes(t[:]) }

// TokenIDFromUint64 builds a token id from a small integer.
func TokenIDFromUint64(v uint64) TokenID {
	var t TokenID
	binary.BigEndian.PutUint64(t[TokenIDSize-8:], v)
	return t
}

// TokenIDFromISIN converts an ISIN code to its token id. The code must be
// exactly 12 characters; lowercase ASCII letters are folded to uppercase and
// every byte must then be ASCII alphanumeric. The upper-cased bytes are
// packed big-endian into the low-order bytes of the id, so the conversion is
// case-insensitive and injective over valid codes.
func TokenIDFromISIN(isin string) (TokenID, error) {
	var t TokenID
	if len(isin) != IsinLength {
		return t, fmt.Errorf("%w: %d characters", ErrInvalidIsinCodeLength, len(isin))
	}
	for i := 0; i < IsinLength; i++ {
		c := isin[i]
		u := c
		if u >= 'a' && u <= 'z' {
			u -= 'a' - 'A'
		}
		if !(u >= '0' && u <= '9' || u >= 'A' && u <= 'Z') {
			return TokenID{}, fmt.Errorf("%w: 0x%02x", ErrInvalidIsinCodeCharacter, c)
		}
		t[TokenIDSize-IsinLength+i] = u
	}
	return t, nil
}
