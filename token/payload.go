package token

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/secledger/libsecledger-go/asset"
)

// Transfer kinds accepted in a transfer payload.
const (
	TransferKindDirect = "Direct"
	TransferKindLock   = "Lock"
)

// TokenOperators names the per-position delegates.
type TokenOperators struct {
	RegistrarAgent  asset.Address `cbor:"registrar_agent"`
	SettlementAgent asset.Address `cbor:"settlement_agent"`
}

// TokenMetadata carries the descriptive fields set atomically with the first
// mint.
type TokenMetadata struct {
	URI                   string        `cbor:"uri"`
	FormerContractAddress asset.Address `cbor:"former_contract_address"`
	WebURI                string        `cbor:"web_uri"`
}

// SatelliteDetails requests a mirror ledger for the position. A zero
// implementation address means no satellite is created.
type SatelliteDetails struct {
	Name                  string        `cbor:"name"`
	Symbol                string        `cbor:"symbol"`
	ImplementationAddress asset.Address `cbor:"implementation_address"`
}

// MintData is the configuration payload required by the first mint of a
// token id.
type MintData struct {
	Operators TokenOperators   `cbor:"operators"`
	Metadata  TokenMetadata    `cbor:"metadata"`
	Satellite SatelliteDetails `cbor:"satellite"`
}

// TransferData selects the settlement mode of a transfer. TransactionID is
// required for Lock transfers and ignored otherwise.
type TransferData struct {
	Kind          string `cbor:"kind"`
	TransactionID string `cbor:"transaction_id,omitempty"`
}

// EncodeMintData serializes a mint configuration payload.
func EncodeMintData(d MintData) ([]byte, error) {
	b, err := cbor.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("token: encode mint data: %w", err)
	}
	return b, nil
}

// DecodeMintData deserializes a mint configuration payload. Malformed data
// surfaces the codec's own error; the encoding boundary is deliberately
// coarse.
func DecodeMintData(data []byte) (MintData, error) {
	var d MintData
	if err := cbor.Unmarshal(data, &d); err != nil {
		return MintData{}, err
	}
	return d, nil
}

// EncodeTransferData serializes a transfer payload.
func EncodeTransferData(d TransferData) ([]byte, error) {
	b, err := cbor.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("token: encode transfer data: %w", err)
	}
	return b, nil
}

// DecodeTransferData deserializes a transfer payload, propagating codec
// errors as-is.
func DecodeTransferData(data []byte) (TransferData, error) {
	var d TransferData
	if err := cbor.Unmarshal(data, &d); err != nil {
		return TransferData{}, err
	}
	return d, nil
}
