// Package token implements the multi-asset security token ledger: the
// position registry, the balance/engagement ledger, the lock-transfer
// settlement state machine, and the role-gated governance and upgrade
// surface. Every position is tracked in the shared ledger and, when
// requested at first mint, mirrored by a per-position satellite ledger.
//
// All mutating entry points take the caller's address explicitly and are
// serialized by an internal mutex; each call is a single atomic unit that
// either fully commits or leaves no trace. Ledger state is written before
// any satellite call-out so a reentrant observer always sees consistent
// state.
package token

import (
	"sync"

	"github.com/secledger/libsecledger-go/asset"
	"github.com/secledger/libsecledger-go/governance"
	"github.com/secledger/libsecledger-go/satellite"
)

// Position is a single token id's configuration and supply record.
type Position struct {
	TokenID               asset.TokenID
	RegistrarAgent        asset.Address
	SettlementAgent       asset.Address
	MetadataURI           string
	WebURI                string
	FormerContractAddress asset.Address
	SatelliteAddress      asset.Address
	Minted                bool
}

// accountKey addresses one account's holding of one token id.
type accountKey struct {
	account asset.Address
	token   asset.TokenID
}

// Params configures a new ledger service.
type Params struct {
	// Name and Symbol describe the deployment as a whole.
	Name   string
	Symbol string

	// BaseURI prefixes every position's metadata URI.
	BaseURI string

	// Registrar and Technical are the initial governance operators.
	Registrar asset.Address
	Technical asset.Address

	// Address identifies the deployment itself; it owns every satellite.
	// When zero it is derived from the operators and the name.
	Address asset.Address

	// Sink receives emitted events. Optional.
	Sink Sink
}

// Service is the ledger deployment: position registry, settlement engine and
// governance in one atomically invoked unit.
type Service struct {
	mu sync.Mutex

	addr    asset.Address
	name    string
	symbol  string
	baseURI string

	gov         *governance.State
	impl        Implementation
	implVersion string

	positions map[asset.TokenID]*Position
	balances  map[accountKey]uint64
	engaged   map[accountKey]uint64
	supplies  map[asset.TokenID]uint64
	requests  map[string]*TransferRequest

	satImpls   map[asset.Address]bool
	satellites map[asset.TokenID]*satellite.Ledger

	sink Sink
}

// New creates a ledger service with the given parameters.
func New(p Params) (*Service, error) {
	gov, err := governance.NewState(p.Registrar, p.Technical)
	if err != nil {
		return nil, err
	}
	addr := p.Address
	if addr.IsZero() {
		addr = asset.DeriveAddress([]byte(p.Name), p.Registrar[:], p.Technical[:])
	}
	return &Service{
		addr:       addr,
		name:       p.Name,
		symbol:     p.Symbol,
		baseURI:    p.BaseURI,
		gov:        gov,
		positions:  make(map[asset.TokenID]*Position),
		balances:   make(map[accountKey]uint64),
		engaged:    make(map[accountKey]uint64),
		supplies:   make(map[asset.TokenID]uint64),
		requests:   make(map[string]*TransferRequest),
		satImpls:   make(map[asset.Address]bool),
		satellites: make(map[asset.TokenID]*satellite.Ledger),
		sink:       p.Sink,
	}, nil
}

// Address returns the deployment's own address.
func (s *Service) Address() asset.Address { return s.addr }

// Name returns the deployment name.
func (s *Service) Name() string { return s.name }

// Symbol returns the deployment symbol.
func (s *Service) Symbol() string { return s.symbol }

// Paused reports whether mutating operations are blocked.
func (s *Service) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gov.Paused()
}

// Registrar returns the current registrar.
func (s *Service) Registrar() asset.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gov.Registrar()
}

// Technical returns the current technical operator.
func (s *Service) Technical() asset.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gov.Technical()
}

// BalanceOf returns the total units of tokenID held by account.
func (s *Service) BalanceOf(account asset.Address, tokenID asset.TokenID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[accountKey{account, tokenID}]
}

// BalanceOfBatch returns the balances for parallel account/token id slices.
func (s *Service) BalanceOfBatch(accounts []asset.Address, tokenIDs []asset.TokenID) ([]uint64, error) {
	if len(accounts) != len(tokenIDs) {
		return nil, ErrArrayLengthMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(accounts))
	for i := range accounts {
		out[i] = s.balances[accountKey{accounts[i], tokenIDs[i]}]
	}
	return out, nil
}

// EngagedAmount returns the units of tokenID locked in open settlement
// requests for account.
func (s *Service) EngagedAmount(account asset.Address, tokenID asset.TokenID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engaged[accountKey{account, tokenID}]
}

// TotalSupply returns the total units of tokenID in circulation.
func (s *Service) TotalSupply(tokenID asset.TokenID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supplies[tokenID]
}

// GetRegistrarAgent returns the position's registrar agent, or the zero
// address for an unknown position.
func (s *Service) GetRegistrarAgent(tokenID asset.TokenID) asset.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos := s.positions[tokenID]; pos != nil {
		return pos.RegistrarAgent
	}
	return asset.ZeroAddress
}

// GetSettlementAgent returns the position's settlement agent, or the zero
// address for an unknown position.
func (s *Service) GetSettlementAgent(tokenID asset.TokenID) asset.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos := s.positions[tokenID]; pos != nil {
		return pos.SettlementAgent
	}
	return asset.ZeroAddress
}

// TokenIDByISIN converts an ISIN code to its token id.
func (s *Service) TokenIDByISIN(isin string) (asset.TokenID, error) {
	return asset.TokenIDFromISIN(isin)
}

// Satellite returns the position's mirror ledger, or nil when none exists.
func (s *Service) Satellite(tokenID asset.TokenID) *satellite.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.satellites[tokenID]
}

// SafeBatchTransferFrom is not part of the settlement surface.
func (s *Service) SafeBatchTransferFrom(asset.Address, asset.Address, asset.Address, []asset.TokenID, []uint64, []byte) error {
	return ErrUnsupportedMethod
}

// SetApprovalForAll is not part of the settlement surface.
func (s *Service) SetApprovalForAll(asset.Address, asset.Address, bool) error {
	return ErrUnsupportedMethod
}

// IsApprovedForAll is not part of the settlement surface.
func (s *Service) IsApprovedForAll(asset.Address, asset.Address) (bool, error) {
	return false, ErrUnsupportedMethod
}

// emit forwards an event to the sink, if any.
func (s *Service) emit(e Event) {
	if s.sink != nil {
		s.sink.Emit(e)
	}
}

// emitSatellite adapts a satellite's transfer events onto the service sink.
func (s *Service) emitSatellite(e satellite.TransferEvent) {
	s.emit(SatelliteTransfer{e})
}
