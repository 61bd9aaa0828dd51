// Package governance owns the registrar/technical role state, the two-phase
// role handover, the pause flag, and the single-use upgrade authorization
// slot. Every privileged ledger operation is gated by a predicate over an
// explicit *State; there is no ambient global role state.
package governance

import (
	"fmt"

	"github.com/secledger/libsecledger-go/asset"
)

// State holds the governance roles of a deployment. Roles change through a
// two-phase handover: naming sets the pending slot, and the named party must
// accept before becoming authoritative. Until then the previous holder keeps
// the role.
type State struct {
	registrar         asset.Address
	pendingRegistrar  asset.Address
	technical         asset.Address
	pendingTechnical  asset.Address
	authorizedUpgrade asset.Address
	paused            bool
}

// NewState creates governance state with the initial operators. Both must be
// non-zero and mutually distinct.
func NewState(registrar, technical asset.Address) (*State, error) {
	if registrar.IsZero() || technical.IsZero() {
		return nil, ErrZeroAddressCheck
	}
	if registrar == technical {
		return nil, ErrInconsistentOperators
	}
	return &State{registrar: registrar, technical: technical}, nil
}

// Registrar returns the current registrar.
func (s *State) Registrar() asset.Address { return s.registrar }

// Technical returns the current technical operator.
func (s *State) Technical() asset.Address { return s.technical }

// PendingRegistrar returns the named-but-unaccepted registrar, if any.
func (s *State) PendingRegistrar() asset.Address { return s.pendingRegistrar }

// PendingTechnical returns the named-but-unaccepted technical operator, if any.
func (s *State) PendingTechnical() asset.Address { return s.pendingTechnical }

// AuthorizedImplementation returns the single authorized upgrade target, or
// the zero address when none is pending.
func (s *State) AuthorizedImplementation() asset.Address { return s.authorizedUpgrade }

// Paused reports whether mutating ledger operations are blocked.
func (s *State) Paused() bool { return s.paused }

// IsRegistrar reports whether caller holds the registrar role.
func (s *State) IsRegistrar(caller asset.Address) bool { return caller == s.registrar }

// IsTechnical reports whether caller holds the technical role.
func (s *State) IsTechnical(caller asset.Address) bool { return caller == s.technical }

// RequireRegistrar fails unless caller is the current registrar.
func (s *State) RequireRegistrar(caller asset.Address) error {
	if !s.IsRegistrar(caller) {
		return fmt.Errorf("%w: %s", ErrUnauthorizedRegistrar, caller)
	}
	return nil
}

// RequireTechnical fails unless caller is the current technical operator.
func (s *State) RequireTechnical(caller asset.Address) error {
	if !s.IsTechnical(caller) {
		return fmt.Errorf("%w: %s", ErrUnauthorizedTechnical, caller)
	}
	return nil
}

// RequireNotPaused fails when the ledger is paused.
func (s *State) RequireNotPaused() error {
	if s.paused {
		return ErrEnforcedPause
	}
	return nil
}

// NameNewOperators names the next registrar and technical operators. Only the
// current registrar may name; both addresses must be non-zero and distinct.
// The named parties take over only once they accept.
func (s *State) NameNewOperators(caller, registrar, technical asset.Address) error {
	if err := s.RequireRegistrar(caller); err != nil {
		return err
	}
	if registrar.IsZero() || technical.IsZero() {
		return ErrZeroAddressCheck
	}
	if registrar == technical {
		return ErrInconsistentOperators
	}
	s.pendingRegistrar = registrar
	s.pendingTechnical = technical
	return nil
}

// AcceptRegistrarRole promotes the pending registrar. The caller must be
// exactly the named address.
func (s *State) AcceptRegistrarRole(caller asset.Address) error {
	if s.pendingRegistrar.IsZero() || caller != s.pendingRegistrar {
		return fmt.Errorf("%w: %s", ErrUnauthorizedRegistrar, caller)
	}
	s.registrar = s.pendingRegistrar
	s.pendingRegistrar = asset.ZeroAddress
	return nil
}

// AcceptTechnicalRole promotes the pending technical operator. The caller
// must be exactly the named address.
func (s *State) AcceptTechnicalRole(caller asset.Address) error {
	if s.pendingTechnical.IsZero() || caller != s.pendingTechnical {
		return fmt.Errorf("%w: %s", ErrUnauthorizedTechnical, caller)
	}
	s.technical = s.pendingTechnical
	s.pendingTechnical = asset.ZeroAddress
	return nil
}

// Pause blocks mutating ledger operations. Registrar only.
func (s *State) Pause(caller asset.Address) error {
	if err := s.RequireRegistrar(caller); err != nil {
		return err
	}
	if s.paused {
		return ErrEnforcedPause
	}
	s.paused = true
	return nil
}

// Unpause lifts the pause. Registrar only.
func (s *State) Unpause(caller asset.Address) error {
	if err := s.RequireRegistrar(caller); err != nil {
		return err
	}
	if !s.paused {
		return ErrExpectedPause
	}
	s.paused = false
	return nil
}

// AuthorizeImplementation stores impl as the sole authorized upgrade target.
// Registrar only; impl must be non-zero. A later authorization replaces an
// earlier one.
func (s *State) AuthorizeImplementation(caller, impl asset.Address) error {
	if err := s.RequireRegistrar(caller); err != nil {
		return err
	}
	if impl.IsZero() {
		return ErrZeroAddressCheck
	}
	s.authorizedUpgrade = impl
	return nil
}

// ConsumeAuthorizedImplementation validates that impl is the authorized
// upgrade target and clears the slot. Technical only. Each upgrade therefore
// needs a fresh authorization; a stale target cannot be replayed.
func (s *State) ConsumeAuthorizedImplementation(caller, impl asset.Address) error {
	if err := s.RequireTechnical(caller); err != nil {
		return err
	}
	if s.authorizedUpgrade.IsZero() || impl != s.authorizedUpgrade {
		return fmt.Errorf("%w: %s", ErrUnauthorizedImplementation, impl)
	}
	s.authorizedUpgrade = asset.ZeroAddress
	return nil
}

// Snapshot captures the governance state for persistence.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Registrar:                s.registrar,
		PendingRegistrar:         s.pendingRegistrar,
		Technical:                s.technical,
		PendingTechnical:         s.pendingTechnical,
		AuthorizedImplementation: s.authorizedUpgrade,
		Paused:                   s.paused,
	}
}

// Restore rebuilds governance state from a snapshot.
func Restore(snap Snapshot) *State {
	return &State{
		registrar:         snap.Registrar,
		pendingRegistrar:  snap.PendingRegistrar,
		technical:         snap.Technical,
		pendingTechnical:  snap.PendingTechnical,
		authorizedUpgrade: snap.AuthorizedImplementation,
		paused:            snap.Paused,
	}
}

// Snapshot is the persisted form of governance state.
type Snapshot struct {
	Registrar                asset.Address `cbor:"registrar"`
	PendingRegistrar         asset.Address `cbor:"pending_registrar"`
	Technical                asset.Address `cbor:"technical"`
	PendingTechnical         asset.Address `cbor:"pending_technical"`
	AuthorizedImplementation asset.Address `cbor:"authorized_implementation"`
	Paused                   bool          `cbor:"paused"`
}
