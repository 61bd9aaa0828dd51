package token

import "github.com/secledger/libsecledger-go/asset"

// RegisterSatelliteImplementation marks an implementation address as a valid
// satellite to request at mint time. Registrar only. Mint configuration
// naming an unregistered implementation fails the satellite capability
// check.
func (s *Service) RegisterSatelliteImplementation(caller, impl asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	if impl.IsZero() {
		return ErrZeroAddressCheck
	}
	s.satImpls[impl] = true
	return nil
}

// SatelliteImplementationRegistered reports whether impl may back new
// satellites.
func (s *Service) SatelliteImplementationRegistered(impl asset.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.satImpls[impl]
}
