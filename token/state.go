package token

import (
	"bytes"
	"sort"

	"github.com/secledger/libsecledger-go/asset"
	"github.com/secledger/libsecledger-go/governance"
	"github.com/secledger/libsecledger-go/satellite"
)

// State is the persisted form of a ledger deployment. It survives code
// upgrades: a restored service carries the same positions, balances,
// engagements, open and terminal transfer requests, and governance roles.
type State struct {
	Name    string        `cbor:"name"`
	Symbol  string        `cbor:"symbol"`
	BaseURI string        `cbor:"base_uri"`
	Address asset.Address `cbor:"address"`

	Governance governance.Snapshot `cbor:"governance"`

	ImplementationVersion string `cbor:"implementation_version,omitempty"`

	Positions      []PositionRecord  `cbor:"positions"`
	Holdings       []HoldingRecord   `cbor:"holdings"`
	Requests       []TransferRequest `cbor:"requests"`
	SatelliteImpls []asset.Address   `cbor:"satellite_impls"`
	Satellites     []SatelliteRecord `cbor:"satellites"`
}

// PositionRecord is the persisted form of a Position.
type PositionRecord struct {
	TokenID               asset.TokenID `cbor:"token_id"`
	RegistrarAgent        asset.Address `cbor:"registrar_agent"`
	SettlementAgent       asset.Address `cbor:"settlement_agent"`
	MetadataURI           string        `cbor:"metadata_uri"`
	WebURI                string        `cbor:"web_uri"`
	FormerContractAddress asset.Address `cbor:"former_contract_address"`
	SatelliteAddress      asset.Address `cbor:"satellite_address"`
	Minted                bool          `cbor:"minted"`
}

// HoldingRecord is one account's balance and engagement for one token id.
type HoldingRecord struct {
	Account asset.Address `cbor:"account"`
	TokenID asset.TokenID `cbor:"token_id"`
	Balance uint64        `cbor:"balance"`
	Engaged uint64        `cbor:"engaged"`
}

// AccountBalance is one mirrored holding inside a satellite record.
type AccountBalance struct {
	Account asset.Address `cbor:"account"`
	Amount  uint64        `cbor:"amount"`
}

// SatelliteRecord is the persisted form of a position's mirror ledger.
type SatelliteRecord struct {
	TokenID               asset.TokenID    `cbor:"token_id"`
	Address               asset.Address    `cbor:"address"`
	Name                  string           `cbor:"name"`
	Symbol                string           `cbor:"symbol"`
	TokenURI              string           `cbor:"token_uri"`
	WebURI                string           `cbor:"web_uri"`
	FormerContractAddress asset.Address    `cbor:"former_contract_address"`
	Balances              []AccountBalance `cbor:"balances"`
}

// Snapshot captures the full ledger state in a deterministic order.
func (s *Service) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{
		Name:                  s.name,
		Symbol:                s.symbol,
		BaseURI:               s.baseURI,
		Address:               s.addr,
		Governance:            s.gov.Snapshot(),
		ImplementationVersion: s.implVersion,
	}

	for _, pos := range s.positions {
		st.Positions = append(st.Positions, PositionRecord{
			TokenID:               pos.TokenID,
			RegistrarAgent:        pos.RegistrarAgent,
			SettlementAgent:       pos.SettlementAgent,
			MetadataURI:           pos.MetadataURI,
			WebURI:                pos.WebURI,
			FormerContractAddress: pos.FormerContractAddress,
			SatelliteAddress:      pos.SatelliteAddress,
			Minted:                pos.Minted,
		})
	}
	sort.Slice(st.Positions, func(i, j int) bool {
		return bytes.Compare(st.Positions[i].TokenID[:], st.Positions[j].TokenID[:]) < 0
	})

	seen := make(map[accountKey]bool)
	for key, bal := range s.balances {
		seen[key] = true
		st.Holdings = append(st.Holdings, HoldingRecord{
			Account: key.account,
			TokenID: key.token,
			Balance: bal,
			Engaged: s.engaged[key],
		})
	}
	for key, eng := range s.engaged {
		if !seen[key] && eng != 0 {
			st.Holdings = append(st.Holdings, HoldingRecord{Account: key.account, TokenID: key.token, Engaged: eng})
		}
	}
	sort.Slice(st.Holdings, func(i, j int) bool {
		a, b := st.Holdings[i], st.Holdings[j]
		if c := bytes.Compare(a.Account[:], b.Account[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(a.TokenID[:], b.TokenID[:]) < 0
	})

	for _, req := range s.requests {
		st.Requests = append(st.Requests, *req)
	}
	sort.Slice(st.Requests, func(i, j int) bool {
		return st.Requests[i].TransactionID < st.Requests[j].TransactionID
	})

	for impl := range s.satImpls {
		st.SatelliteImpls = append(st.SatelliteImpls, impl)
	}
	sort.Slice(st.SatelliteImpls, func(i, j int) bool {
		return bytes.Compare(st.SatelliteImpls[i][:], st.SatelliteImpls[j][:]) < 0
	})

	for tokenID, sat := range s.satellites {
		rec := SatelliteRecord{
			TokenID:               tokenID,
			Address:               sat.Address(),
			Name:                  sat.Name(),
			Symbol:                sat.Symbol(),
			TokenURI:              sat.TokenURI(),
			WebURI:                sat.WebURI(),
			FormerContractAddress: sat.FormerContractAddress(),
		}
		for account, amount := range sat.Balances() {
			rec.Balances = append(rec.Balances, AccountBalance{Account: account, Amount: amount})
		}
		sort.Slice(rec.Balances, func(i, j int) bool {
			return bytes.Compare(rec.Balances[i].Account[:], rec.Balances[j].Account[:]) < 0
		})
		st.Satellites = append(st.Satellites, rec)
	}
	sort.Slice(st.Satellites, func(i, j int) bool {
		return bytes.Compare(st.Satellites[i].TokenID[:], st.Satellites[j].TokenID[:]) < 0
	})

	return st
}

// Restore rebuilds a service from a snapshot. The sink, as runtime wiring,
// is supplied fresh; the active implementation object is not persisted, so
// only its version label survives.
func Restore(st *State, sink Sink) (*Service, error) {
	gov := governance.Restore(st.Governance)

	s := &Service{
		addr:        st.Address,
		name:        st.Name,
		symbol:      st.Symbol,
		baseURI:     st.BaseURI,
		gov:         gov,
		implVersion: st.ImplementationVersion,
		positions:   make(map[asset.TokenID]*Position, len(st.Positions)),
		balances:    make(map[accountKey]uint64, len(st.Holdings)),
		engaged:     make(map[accountKey]uint64),
		supplies:    make(map[asset.TokenID]uint64),
		requests:    make(map[string]*TransferRequest, len(st.Requests)),
		satImpls:    make(map[asset.Address]bool, len(st.SatelliteImpls)),
		satellites:  make(map[asset.TokenID]*satellite.Ledger, len(st.Satellites)),
		sink:        sink,
	}

	for _, rec := range st.Positions {
		s.positions[rec.TokenID] = &Position{
			TokenID:               rec.TokenID,
			RegistrarAgent:        rec.RegistrarAgent,
			SettlementAgent:       rec.SettlementAgent,
			MetadataURI:           rec.MetadataURI,
			WebURI:                rec.WebURI,
			FormerContractAddress: rec.FormerContractAddress,
			SatelliteAddress:      rec.SatelliteAddress,
			Minted:                rec.Minted,
		}
	}
	for _, h := range st.Holdings {
		key := accountKey{h.Account, h.TokenID}
		if h.Balance != 0 {
			s.balances[key] = h.Balance
			s.supplies[h.TokenID] += h.Balance
		}
		if h.Engaged != 0 {
			s.engaged[key] = h.Engaged
		}
	}
	for _, req := range st.Requests {
		r := req
		s.requests[r.TransactionID] = &r
	}
	for _, impl := range st.SatelliteImpls {
		s.satImpls[impl] = true
	}
	for _, rec := range st.Satellites {
		sat := satellite.New()
		err := sat.Init(rec.Address, s.addr, rec.TokenID, satellite.Details{
			Name:                  rec.Name,
			Symbol:                rec.Symbol,
			TokenURI:              rec.TokenURI,
			WebURI:                rec.WebURI,
			FormerContractAddress: rec.FormerContractAddress,
		}, s.emitSatellite)
		if err != nil {
			return nil, err
		}
		balances := make(map[asset.Address]uint64, len(rec.Balances))
		for _, b := range rec.Balances {
			balances[b.Account] = b.Amount
		}
		if err := sat.RestoreBalances(s.addr, balances); err != nil {
			return nil, err
		}
		s.satellites[rec.TokenID] = sat
	}
	return s, nil
}
