package governance

import "errors"

var (
	// ErrUnauthorizedRegistrar indicates the caller does not hold the registrar role.
	ErrUnauthorizedRegistrar = errors.New("governance: unauthorized registrar")

	// ErrUnauthorizedTechnical indicates the caller does not hold the technical role.
	ErrUnauthorizedTechnical = errors.New("governance: unauthorized technical")

	// ErrZeroAddressCheck indicates a zero address where a real one is required.
	ErrZeroAddressCheck = errors.New("governance: zero address")

	// ErrInconsistentOperators indicates the registrar and technical addresses
	// are not mutually distinct.
	ErrInconsistentOperators = errors.New("governance: inconsistent operators")

	// ErrEnforcedPause indicates an operation that requires an unpaused ledger.
	ErrEnforcedPause = errors.New("governance: paused")

	// ErrExpectedPause indicates an unpause of an already unpaused ledger.
	ErrExpectedPause = errors.New("governance: not paused")

	// ErrUnauthorizedImplementation indicates an upgrade target that is not the
	// currently authorized implementation.
	ErrUnauthorizedImplementation = errors.New("governance: unauthorized implementation")
)
