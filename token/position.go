package token

import (
	"fmt"
	"math"

	"github.com/secledger/libsecledger-go/asset"
	"github.com/secledger/libsecledger-go/satellite"
)

// Mint credits amount of tokenID to the receiver. Registrar only, not while
// paused.
//
// For an unminted token id, data must decode to the position's configuration:
// agents, metadata and an optional satellite request. The position and its
// satellite are created exactly once, here. For an already-minted id, data
// must be empty and the call is a pure top-up that only credits balance and
// mirrors the mint.
func (s *Service) Mint(caller, to asset.Address, tokenID asset.TokenID, amount uint64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	if to.IsZero() {
		return ErrZeroAddressCheck
	}

	pos := s.positions[tokenID]
	if pos != nil && pos.Minted {
		if len(data) != 0 {
			return fmt.Errorf("%w: %s", ErrTokenAlreadyMinted, tokenID)
		}
		if err := s.credit(to, tokenID, amount); err != nil {
			return err
		}
		s.mirrorMint(tokenID, to, amount)
		s.emit(TransferSingle{Operator: caller, From: asset.ZeroAddress, To: to, TokenID: tokenID, Amount: amount})
		return nil
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrTokenNotAlreadyMinted, tokenID)
	}
	cfg, err := DecodeMintData(data)
	if err != nil {
		return err
	}
	if cfg.Operators.RegistrarAgent.IsZero() || cfg.Operators.SettlementAgent.IsZero() {
		return ErrZeroAddressCheck
	}

	var sat *satellite.Ledger
	var satAddr asset.Address
	if !cfg.Satellite.ImplementationAddress.IsZero() {
		if !s.satImpls[cfg.Satellite.ImplementationAddress] {
			return fmt.Errorf("%w: %s", ErrInvalidSatelliteAddress, cfg.Satellite.ImplementationAddress)
		}
		satAddr = asset.DeriveAddress(s.addr[:], cfg.Satellite.ImplementationAddress[:], tokenID[:])
		sat = satellite.New()
		err = sat.Init(satAddr, s.addr, tokenID, satellite.Details{
			Name:                  cfg.Satellite.Name,
			Symbol:                cfg.Satellite.Symbol,
			TokenURI:              cfg.Metadata.URI,
			WebURI:                cfg.Metadata.WebURI,
			FormerContractAddress: cfg.Metadata.FormerContractAddress,
		}, s.emitSatellite)
		if err != nil {
			return err
		}
	}

	if err := s.credit(to, tokenID, amount); err != nil {
		return err
	}
	s.positions[tokenID] = &Position{
		TokenID:               tokenID,
		RegistrarAgent:        cfg.Operators.RegistrarAgent,
		SettlementAgent:       cfg.Operators.SettlementAgent,
		MetadataURI:           cfg.Metadata.URI,
		WebURI:                cfg.Metadata.WebURI,
		FormerContractAddress: cfg.Metadata.FormerContractAddress,
		SatelliteAddress:      satAddr,
		Minted:                true,
	}

	if sat != nil {
		s.satellites[tokenID] = sat
		s.emit(NewSatellite{TokenID: tokenID, Satellite: satAddr})
		s.mirrorMint(tokenID, to, amount)
	}
	s.emit(TransferSingle{Operator: caller, From: asset.ZeroAddress, To: to, TokenID: tokenID, Amount: amount})
	return nil
}

// Burn debits amount of tokenID from the holder. Registrar only, not while
// paused. Engaged funds may be burned, but never more than the total
// balance; when the remaining balance drops below the engaged amount the
// engagement is reduced to the balance so the engagement bound holds.
func (s *Service) Burn(caller, from asset.Address, tokenID asset.TokenID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	if from.IsZero() {
		return ErrZeroAddressCheck
	}

	key := accountKey{from, tokenID}
	balance := s.balances[key]
	if amount > balance {
		return fmt.Errorf("%w: token %s: balance %d, requested %d", ErrInsufficientBalance, tokenID, balance, amount)
	}
	s.balances[key] = balance - amount
	s.supplies[tokenID] -= amount
	if s.engaged[key] > s.balances[key] {
		s.engaged[key] = s.balances[key]
	}

	s.mirrorBurn(tokenID, from, amount)
	s.emit(TransferSingle{Operator: caller, From: from, To: asset.ZeroAddress, TokenID: tokenID, Amount: amount})
	return nil
}

// SetRegistrarAgent updates the position's registrar agent. Registrar only,
// not while paused; the position must already have one.
func (s *Service) SetRegistrarAgent(caller asset.Address, tokenID asset.TokenID, agent asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	if agent.IsZero() {
		return ErrZeroAddressCheck
	}
	pos := s.positions[tokenID]
	if pos == nil || pos.RegistrarAgent.IsZero() {
		return fmt.Errorf("%w: %s", ErrNoRegistrarAgentCurrentlySet, tokenID)
	}
	old := pos.RegistrarAgent
	pos.RegistrarAgent = agent
	s.emit(RegistrarAgentUpdated{TokenID: tokenID, Old: old, New: agent})
	return nil
}

// SetSettlementAgent updates the position's settlement agent. Registrar
// only, not while paused; the position must already have one.
func (s *Service) SetSettlementAgent(caller asset.Address, tokenID asset.TokenID, agent asset.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gov.RequireNotPaused(); err != nil {
		return err
	}
	if err := s.gov.RequireRegistrar(caller); err != nil {
		return err
	}
	if agent.IsZero() {
		return ErrZeroAddressCheck
	}
	pos := s.positions[tokenID]
	if pos == nil || pos.SettlementAgent.IsZero() {
		return fmt.Errorf("%w: %s", ErrNoSettlementAgentCurrentlySet, tokenID)
	}
	old := pos.SettlementAgent
	pos.SettlementAgent = agent
	s.emit(SettlementAgentUpdated{TokenID: tokenID, Old: old, New: agent})
	return nil
}

// credit adds amount to the holder's balance and the token supply. The
// supply bounds every balance, so rejecting supply wraparound here rules
// out overflow anywhere in the ledger.
func (s *Service) credit(to asset.Address, tokenID asset.TokenID, amount uint64) error {
	if amount > math.MaxUint64-s.supplies[tokenID] {
		return fmt.Errorf("%w: %s", ErrTotalSupplyOverflow, tokenID)
	}
	s.balances[accountKey{to, tokenID}] += amount
	s.supplies[tokenID] += amount
	return nil
}

// The mirror helpers replay ledger movements on the position's satellite,
// if any. The satellite stays in lockstep with the main ledger and the
// service is its owner, so these calls cannot fail; they run after the main
// ledger has been written.

func (s *Service) mirrorMint(tokenID asset.TokenID, to asset.Address, amount uint64) {
	if sat := s.satellites[tokenID]; sat != nil {
		_ = sat.Mint(s.addr, to, amount)
	}
}

func (s *Service) mirrorBurn(tokenID asset.TokenID, from asset.Address, amount uint64) {
	if sat := s.satellites[tokenID]; sat != nil {
		_ = sat.Burn(s.addr, from, amount)
	}
}

func (s *Service) mirrorTransfer(tokenID asset.TokenID, from, to asset.Address, amount uint64) {
	if sat := s.satellites[tokenID]; sat != nil {
		_ = sat.Transfer(s.addr, from, to, amount)
	}
}
