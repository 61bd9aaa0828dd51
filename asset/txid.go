package asset

import "fmt"

// TransactionIDLength is the fixed length of a settlement transaction id,
// a UUID in canonical textual form.
const TransactionIDLength = 36

// dashOffsets are the positions where a canonical UUID carries a dash.
var dashOffsets = map[int]bool{8: true, 13: true, 18: true, 23: true}

// ValidateTransactionID checks that id is syntactically a canonical UUID:
// 36 characters, lowercase hex, with dashes at offsets 8, 13, 18 and 23.
// It does not interpret the UUID's version or variant bits.
func ValidateTransactionID(id string) error {
	if len(id) != TransactionIDLength {
		return fmt.Errorf("%w: %d characters", ErrInvalidUUIDLength, len(id))
	}
	for i := 0; i < TransactionIDLength; i++ {
		c := id[i]
		if dashOffsets[i] {
			if c != '-' {
				return fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidUUIDCharacter, c, i)
			}
			continue
		}
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidUUIDCharacter, c, i)
		}
	}
	return nil
}
