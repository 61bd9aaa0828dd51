package token

import (
	"errors"

	"github.com/secledger/libsecledger-go/governance"
)

// Role and pause errors are shared with the governance package so callers can
// match them with errors.Is regardless of which layer raised them.
var (
	ErrUnauthorizedRegistrar      = governance.ErrUnauthorizedRegistrar
	ErrUnauthorizedTechnical      = governance.ErrUnauthorizedTechnical
	ErrZeroAddressCheck           = governance.ErrZeroAddressCheck
	ErrInconsistentOperators      = governance.ErrInconsistentOperators
	ErrEnforcedPause              = governance.ErrEnforcedPause
	ErrExpectedPause              = governance.ErrExpectedPause
	ErrUnauthorizedImplementation = governance.ErrUnauthorizedImplementation
)

var (
	// ErrUnauthorizedRegistrarAgent indicates the caller is not the position's
	// registrar agent.
	ErrUnauthorizedRegistrarAgent = errors.New("token: unauthorized registrar agent")

	// ErrUnauthorizedSettlementAgent indicates the caller is not the position's
	// settlement agent.
	ErrUnauthorizedSettlementAgent = errors.New("token: unauthorized settlement agent")

	// ErrTokenAlreadyMinted indicates configuration data supplied for an
	// already-minted token id.
	ErrTokenAlreadyMinted = errors.New("token: token already minted")

	// ErrTokenNotAlreadyMinted indicates a mint without configuration data for
	// an unminted token id, or an operation on a position that does not exist.
	ErrTokenNotAlreadyMinted = errors.New("token: token not already minted")

	// ErrNoRegistrarAgentCurrentlySet indicates an agent update on a position
	// that has no registrar agent.
	ErrNoRegistrarAgentCurrentlySet = errors.New("token: no registrar agent currently set")

	// ErrNoSettlementAgentCurrentlySet indicates an agent update on a position
	// that has no settlement agent.
	ErrNoSettlementAgentCurrentlySet = errors.New("token: no settlement agent currently set")

	// ErrInvalidSatelliteAddress indicates a satellite implementation address
	// that is not registered with the satellite factory.
	ErrInvalidSatelliteAddress = errors.New("token: invalid satellite address")

	// ErrInsufficientBalance indicates a movement exceeding the available
	// (or, for burns, total) balance.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrDataTransferEmpty indicates a transfer with an empty data payload.
	ErrDataTransferEmpty = errors.New("token: transfer data empty")

	// ErrInvalidTransferType indicates an unsupported transfer kind.
	ErrInvalidTransferType = errors.New("token: invalid transfer type")

	// ErrTransactionAlreadyExists indicates a lock transfer reusing a
	// transaction id.
	ErrTransactionAlreadyExists = errors.New("token: transaction already exists")

	// ErrInvalidTransferRequestStatus indicates a transition or query on a
	// transfer request that is not in the Created state.
	ErrInvalidTransferRequestStatus = errors.New("token: invalid transfer request status")

	// ErrUnauthorizedCallContext indicates an upgrade attempted directly on an
	// implementation instead of through the live service.
	ErrUnauthorizedCallContext = errors.New("token: unauthorized call context")

	// ErrUnsupportedMethod indicates use of the permanently unsupported
	// batch/approval surface.
	ErrUnsupportedMethod = errors.New("token: unsupported method")

	// ErrArrayLengthMismatch indicates batch query slices of unequal length.
	ErrArrayLengthMismatch = errors.New("token: array length mismatch")

	// ErrTotalSupplyOverflow indicates a mint that would wrap the token's
	// total supply.
	ErrTotalSupplyOverflow = errors.New("token: total supply overflow")
)
