// Package satellite implements the per-position mirror ledger. A satellite
// exposes a conventional single-asset balance view of exactly one token id.
// Its balance-mutating entry points are callable only by the owning position
// registry, and its public transfer/approval surface is permanently disabled
// so that no value can move outside the settlement engine's control.
package satellite

import (
	"fmt"

	"github.com/secledger/libsecledger-go/asset"
)

// TransferEvent is emitted for every mirrored movement. Mints carry a zero
// From, burns a zero To. A freshly created or cancelled lock emits a
// zero-amount event so balance observers see the position in flight.
type TransferEvent struct {
	Satellite asset.Address
	TokenID   asset.TokenID
	From      asset.Address
	To        asset.Address
	Amount    uint64
}

// Details carries the descriptive fields of a satellite, set once at
// initialization by the owning registry.
type Details struct {
	Name                  string
	Symbol                string
	TokenURI              string
	WebURI                string
	FormerContractAddress asset.Address
}

// Ledger is a single-position mirror ledger. The zero value is uninitialized;
// Init must be called exactly once before use.
type Ledger struct {
	initialized bool
	addr        asset.Address
	owner       asset.Address
	tokenID     asset.TokenID
	details     Details

	balances    map[asset.Address]uint64
	totalSupply uint64

	emit func(TransferEvent)
}

// New returns an uninitialized satellite ledger.
func New() *Ledger { return &Ledger{} }

// Init initializes the satellite exactly once. owner is the only address
// allowed to move balances; emit may be nil when no observer is attached.
func (l *Ledger) Init(addr, owner asset.Address, tokenID asset.TokenID, details Details, emit func(TransferEvent)) error {
	if l.initialized {
		return ErrInvalidInitialization
	}
	if addr.IsZero() || owner.IsZero() {
		return ErrZeroAddressCheck
	}
	l.initialized = true
	l.addr = addr
	l.owner = owner
	l.tokenID = tokenID
	l.details = details
	l.balances = make(map[asset.Address]uint64)
	l.emit = emit
	return nil
}

// Address returns the satellite's own address.
func (l *Ledger) Address() asset.Address { return l.addr }

// TokenID returns the mirrored token id.
func (l *Ledger) TokenID() asset.TokenID { return l.tokenID }

// Name returns the satellite's token name.
func (l *Ledger) Name() string { return l.details.Name }

// Symbol returns the satellite's token symbol.
func (l *Ledger) Symbol() string { return l.details.Symbol }

// TokenURI returns the mirrored position's metadata URI.
func (l *Ledger) TokenURI() string { return l.details.TokenURI }

// WebURI returns the mirrored position's web URI.
func (l *Ledger) WebURI() string { return l.details.WebURI }

// FormerContractAddress returns the predecessor deployment address, if any.
func (l *Ledger) FormerContractAddress() asset.Address { return l.details.FormerContractAddress }

// BalanceOf returns the mirrored balance of account.
func (l *Ledger) BalanceOf(account asset.Address) uint64 { return l.balances[account] }

// TotalSupply returns the mirrored total supply.
func (l *Ledger) TotalSupply() uint64 { return l.totalSupply }

func (l *Ledger) requireOwner(caller asset.Address) error {
	if !l.initialized || caller != l.owner {
		return fmt.Errorf("%w: caller %s", ErrUnauthorized, caller)
	}
	return nil
}

// Mint credits amount to account and grows the supply. Owner only.
func (l *Ledger) Mint(caller, to asset.Address, amount uint64) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}
	l.balances[to] += amount
	l.totalSupply += amount
	l.fire(asset.ZeroAddress, to, amount)
	return nil
}

// Burn debits amount from account and shrinks the supply. Owner only.
func (l *Ledger) Burn(caller, from asset.Address, amount uint64) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}
	if l.balances[from] < amount {
		return fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientBalance, l.balances[from], amount)
	}
	l.balances[from] -= amount
	l.totalSupply -= amount
	l.fire(from, asset.ZeroAddress, amount)
	return nil
}

// Transfer moves amount between accounts. Owner only. A zero amount is a
// pure signal: no balances change but the event is still emitted.
func (l *Ledger) Transfer(caller, from, to asset.Address, amount uint64) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}
	if l.balances[from] < amount {
		return fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientBalance, l.balances[from], amount)
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	l.fire(from, to, amount)
	return nil
}

// Approve is permanently disabled.
func (l *Ledger) Approve(asset.Address, asset.Address, uint64) error { return ErrDisabled }

// Allowance is permanently disabled.
func (l *Ledger) Allowance(asset.Address, asset.Address) (uint64, error) { return 0, ErrDisabled }

// TransferFrom is permanently disabled.
func (l *Ledger) TransferFrom(asset.Address, asset.Address, asset.Address, uint64) error {
	return ErrDisabled
}

func (l *Ledger) fire(from, to asset.Address, amount uint64) {
	if l.emit == nil {
		return
	}
	l.emit(TransferEvent{
		Satellite: l.addr,
		TokenID:   l.tokenID,
		From:      from,
		To:        to,
		Amount:    amount,
	})
}

// Balances returns a copy of the balance table, for persistence.
func (l *Ledger) Balances() map[asset.Address]uint64 {
	out := make(map[asset.Address]uint64, len(l.balances))
	for a, v := range l.balances {
		out[a] = v
	}
	return out
}

// Details returns the satellite's descriptive fields.
func (l *Ledger) Details() Details { return l.details }

// RestoreBalances replaces the balance table and supply, for state restore.
// Owner only.
func (l *Ledger) RestoreBalances(caller asset.Address, balances map[asset.Address]uint64) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}
	l.balances = make(map[asset.Address]uint64, len(balances))
	var supply uint64
	for a, v := range balances {
		l.balances[a] = v
		supply += v
	}
	l.totalSupply = supply
	return nil
}
