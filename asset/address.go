package asset

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"golang.org/x/crypto/sha3"
)

// AddressSize is the length of an account address in bytes.
const AddressSize = 20

// Address identifies an account, agent, or satellite instance.
// The zero value means "no address".
type Address [AddressSize]byte

// ZeroAddress is the absent address.
var ZeroAddress Address

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool { return a == ZeroAddress }

// String returns the address as lowercase hex.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// AddressFromPublicKey derives an address as the Hash160 of the
// compressed public key.
func AddressFromPublicKey(pub *ec.PublicKey) Address {
	var a Address
	copy(a[:], bsvhash.Hash160(pub.Compressed()))
	return a
}

// AddressFromHex parses a 40-character hex string into an Address.
func AddressFromHex(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("asset: parse address: %w", err)
	}
	if len(b) != AddressSize {
		return a, fmt.Errorf("%w: %d bytes", ErrInvalidAddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// DeriveAddress computes a deterministic address from the given parts,
// as the first 20 bytes of the SHA3-256 digest of their concatenation.
func DeriveAddress(parts ...[]byte) Address {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}
