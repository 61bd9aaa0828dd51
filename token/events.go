package token

import (
	"github.com/secledger/libsecledger-go/asset"
	"github.com/secledger/libsecledger-go/satellite"
)

// Event is a ledger event for external indexers and UIs. Field order within
// each event is part of the compatibility surface.
type Event interface {
	// EventName returns the stable name of the event.
	EventName() string
}

// Sink receives every event the service emits, in emission order.
type Sink interface {
	Emit(Event)
}

// NamedNewOperators is emitted when the registrar names new operators.
type NamedNewOperators struct {
	Registrar asset.Address
	Technical asset.Address
}

// AcceptedRegistrarRole is emitted when a pending registrar accepts.
type AcceptedRegistrarRole struct {
	Registrar asset.Address
}

// AcceptedTechnicalRole is emitted when a pending technical operator accepts.
type AcceptedTechnicalRole struct {
	Technical asset.Address
}

// ImplementationAuthorized is emitted when the registrar authorizes an
// upgrade target.
type ImplementationAuthorized struct {
	Implementation asset.Address
}

// Upgraded is emitted after a successful implementation swap.
type Upgraded struct {
	Implementation asset.Address
	Version        string
}

// Paused is emitted when the ledger is paused.
type Paused struct {
	Account asset.Address
}

// Unpaused is emitted when the ledger is unpaused.
type Unpaused struct {
	Account asset.Address
}

// NewSatellite is emitted when a position gets its mirror ledger.
type NewSatellite struct {
	TokenID   asset.TokenID
	Satellite asset.Address
}

// RegistrarAgentUpdated is emitted when a position's registrar agent changes.
type RegistrarAgentUpdated struct {
	TokenID asset.TokenID
	Old     asset.Address
	New     asset.Address
}

// SettlementAgentUpdated is emitted when a position's settlement agent changes.
type SettlementAgentUpdated struct {
	TokenID asset.TokenID
	Old     asset.Address
	New     asset.Address
}

// URIChanged is emitted when a position's metadata URI changes.
type URIChanged struct {
	TokenID asset.TokenID
	URI     string
}

// WebURIChanged is emitted when a position's web URI changes.
type WebURIChanged struct {
	TokenID asset.TokenID
	URI     string
}

// TransferSingle is emitted for every balance movement. A zero amount
// signals a freshly created lock without value having moved.
type TransferSingle struct {
	Operator asset.Address
	From     asset.Address
	To       asset.Address
	TokenID  asset.TokenID
	Amount   uint64
}

// LockReady is emitted when a lock transfer request is created.
type LockReady struct {
	TransactionID  string
	RegistrarAgent asset.Address
	From           asset.Address
	To             asset.Address
	TokenID        asset.TokenID
	Amount         uint64
	Data           []byte
}

// LockUpdated is emitted when a lock transfer request reaches a terminal
// state.
type LockUpdated struct {
	TransactionID  string
	RegistrarAgent asset.Address
	From           asset.Address
	To             asset.Address
	TokenID        asset.TokenID
	Status         TransferStatus
}

// SatelliteTransfer wraps a mirror ledger's own transfer event.
type SatelliteTransfer struct {
	satellite.TransferEvent
}

func (NamedNewOperators) EventName() string        { return "NamedNewOperators" }
func (AcceptedRegistrarRole) EventName() string    { return "AcceptedRegistrarRole" }
func (AcceptedTechnicalRole) EventName() string    { return "AcceptedTechnicalRole" }
func (ImplementationAuthorized) EventName() string { return "ImplementationAuthorized" }
func (Upgraded) EventName() string                 { return "Upgraded" }
func (Paused) EventName() string                   { return "Paused" }
func (Unpaused) EventName() string                 { return "Unpaused" }
func (NewSatellite) EventName() string             { return "NewSatellite" }
func (RegistrarAgentUpdated) EventName() string    { return "RegistrarAgentUpdated" }
func (SettlementAgentUpdated) EventName() string   { return "SettlementAgentUpdated" }
func (URIChanged) EventName() string               { return "URIChanged" }
func (WebURIChanged) EventName() string            { return "WebURIChanged" }
func (TransferSingle) EventName() string           { return "TransferSingle" }
func (LockReady) EventName() string                { return "LockReady" }
func (LockUpdated) EventName() string              { return "LockUpdated" }
func (SatelliteTransfer) EventName() string        { return "SatelliteTransfer" }

// MemorySink records events in order. Useful for tests and indexer replay.
type MemorySink struct {
	Events []Event
}

// Emit appends the event.
func (m *MemorySink) Emit(e Event) { m.Events = append(m.Events, e) }

// Named returns all recorded events with the given name.
func (m *MemorySink) Named(name string) []Event {
	var out []Event
	for _, e := range m.Events {
		if e.EventName() == name {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent event, or nil when none were emitted.
func (m *MemorySink) Last() Event {
	if len(m.Events) == 0 {
		return nil
	}
	return m.Events[len(m.Events)-1]
}
