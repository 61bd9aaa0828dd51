package token

import "github.com/secledger/libsecledger-go/asset"

// NameNewOperators names the next registrar and technical operators. The
// named parties become authoritative only once they accept their role.
func (s *Service) NameNewOperators(caller, registrar, technical asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.NameNewOperators(caller, registrar, technical); err != nil {
		return err
	}
	s.emit(NamedNewOperators{Registrar: registrar, Technical: technical})
	return nil
}

// AcceptRegistrarRole promotes the caller to registrar if they are the named
// pending registrar.
func (s *Service) AcceptRegistrarRole(caller asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.AcceptRegistrarRole(caller); err != nil {
		return err
	}
	s.emit(AcceptedRegistrarRole{Registrar: caller})
	return nil
}

// AcceptTechnicalRole promotes the caller to technical operator if they are
// the named pending technical operator.
func (s *Service) AcceptTechnicalRole(caller asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.AcceptTechnicalRole(caller); err != nil {
		return err
	}
	s.emit(AcceptedTechnicalRole{Technical: caller})
	return nil
}

// Pause blocks all mutating ledger operations except Unpause. Registrar
// only.
func (s *Service) Pause(caller asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.Pause(caller); err != nil {
		return err
	}
	s.emit(Paused{Account: caller})
	return nil
}

// Unpause lifts the pause. Registrar only.
func (s *Service) Unpause(caller asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.Unpause(caller); err != nil {
		return err
	}
	s.emit(Unpaused{Account: caller})
	return nil
}
