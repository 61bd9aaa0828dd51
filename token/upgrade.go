package token

import (
	"fmt"

	"github.com/secledger/libsecledger-go/asset"
)

// Implementation is a versioned behavior of the ledger. The stored ledger
// state is stable across implementations; an upgrade swaps only the active
// Implementation behind the running service. Each implementation declares
// the operators it was built for, and authorization requires them to match
// the current accepted governance roles.
type Implementation interface {
	// Address identifies the implementation.
	Address() asset.Address
	// Operators returns the registrar and technical operators the
	// implementation was built for.
	Operators() (registrar, technical asset.Address)
	// Version is a human-readable version discriminator.
	Version() string
}

// Initializer is implemented by implementations that run a migration step
// when activated.
type Initializer interface {
	InitializeUpgrade(s *Service) error
}

// StaticImplementation is a plain Implementation value.
type StaticImplementation struct {
	Addr         asset.Address
	Registrar    asset.Address
	Technical    asset.Address
	VersionLabel string

	// InitFn, when set, runs inside the upgrade after the swap.
	InitFn func(*Service) error
}

// Address implements Implementation.
func (i *StaticImplementation) Address() asset.Address { return i.Addr }

// Operators implements Implementation.
func (i *StaticImplementation) Operators() (asset.Address, asset.Address) {
	return i.Registrar, i.Technical
}

// Version implements Implementation.
func (i *StaticImplementation) Version() string { return i.VersionLabel }

// InitializeUpgrade implements Initializer.
func (i *StaticImplementation) InitializeUpgrade(s *Service) error {
	if i.InitFn == nil {
		return nil
	}
	return i.InitFn(s)
}

// Activate rejects direct activation. An implementation can only go live
// through the running service's Upgrade entry point.
func (i *StaticImplementation) Activate(*Service) error {
	return ErrUnauthorizedCallContext
}

// AuthorizeImplementation stores impl as the single authorized upgrade
// target. Registrar only; the implementation's declared operators must match
// the current accepted registrar and technical roles, so a pending,
// unaccepted handover cannot authorize an upgrade.
func (s *Service) AuthorizeImplementation(caller asset.Address, impl Implementation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	if impl == nil || impl.Address().IsZero() {
		return ErrZeroAddressCheck
	}
	registrar, technical := impl.Operators()
	if registrar != s.gov.Registrar() {
		return fmt.Errorf("%w: implementation registrar %s", ErrUnauthorizedRegistrar, registrar)
	}
	if technical != s.gov.Technical() {
		return fmt.Errorf("%w: implementation technical %s", ErrUnauthorizedTechnical, technical)
	}
	if err := s.gov.AuthorizeImplementation(caller, impl.Address()); err != nil {
		return err
	}
	s.emit(ImplementationAuthorized{Implementation: impl.Address()})
	return nil
}

// Upgrade activates the authorized implementation. Technical only; impl must
// be the currently authorized target, and the authorization is consumed by
// the swap, so each upgrade needs a fresh one. The implementation's
// migration step, if any, runs after the swap.
func (s *Service) Upgrade(caller asset.Address, impl Implementation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if impl == nil {
		return ErrZeroAddressCheck
	}
	if err := s.gov.ConsumeAuthorizedImplementation(caller, impl.Address()); err != nil {
		return err
	}
	s.impl = impl
	s.implVersion = impl.Version()
	if init, ok := impl.(Initializer); ok {
		if err := init.InitializeUpgrade(s); err != nil {
			return err
		}
	}
	s.emit(Upgraded{Implementation: impl.Address(), Version: impl.Version()})
	return nil
}

// ImplementationVersion returns the active implementation's version label,
// or the empty string before any upgrade.
func (s *Service) ImplementationVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.implVersion
}

// AuthorizedImplementation returns the pending upgrade target, or the zero
// address.
func (s *Service) AuthorizedImplementation() asset.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gov.AuthorizedImplementation()
}
