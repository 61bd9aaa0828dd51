package token

import (
	"fmt"

	"github.com/secledger/libsecledger-go/asset"
)

// SetBaseURI replaces the prefix applied to every position's metadata URI.
// Registrar only, not while paused.
func (s *Service) SetBaseURI(caller asset.Address, baseURI string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	s.baseURI = baseURI
	return nil
}

// SetURI replaces a position's metadata URI. Registrar only, not while
// paused.
func (s *Service) SetURI(caller asset.Address, tokenID asset.TokenID, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	pos := s.positions[tokenID]
	if pos == nil {
		return fmt.Errorf("%w: %s", ErrTokenNotAlreadyMinted, tokenID)
	}
	pos.MetadataURI = uri
	s.emit(URIChanged{TokenID: tokenID, URI: uri})
	return nil
}

// URI returns the position's metadata URI prefixed with the base URI.
func (s *Service) URI(tokenID asset.TokenID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos := s.positions[tokenID]; pos != nil {
		return s.baseURI + pos.MetadataURI
	}
	return ""
}

// SetWebURI replaces a position's web URI. Registrar only, not while paused.
func (s *Service) SetWebURI(caller asset.Address, tokenID asset.TokenID, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	pos := s.positions[tokenID]
	if pos == nil {
		return fmt.Errorf("%w: %s", ErrTokenNotAlreadyMinted, tokenID)
	}
	pos.WebURI = uri
	s.emit(WebURIChanged{TokenID: tokenID, URI: uri})
	return nil
}

// WebURI returns the position's web URI.
func (s *Service) WebURI(tokenID asset.TokenID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos := s.positions[tokenID]; pos != nil {
		return pos.WebURI
	}
	return ""
}

// FormerContractAddress returns the predecessor deployment address recorded
// for the position, if any.
func (s *Service) FormerContractAddress(tokenID asset.TokenID) asset.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos := s.positions[tokenID]; pos != nil {
		return pos.FormerContractAddress
	}
	return asset.ZeroAddress
}
