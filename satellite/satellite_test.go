package satellite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secledger/libsecledger-go/asset"
)

func makeAddr(seed byte) asset.Address {
	var a asset.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

var (
	satAddr = makeAddr(0x5a)
	owner   = makeAddr(0x01)
	alice   = makeAddr(0x0a)
	bob     = makeAddr(0x0b)
)

func newTestLedger(t *testing.T, emit func(TransferEvent)) *Ledger {
	t.Helper()
	l := New()
	err := l.Init(satAddr, owner, asset.TokenIDFromUint64(1), Details{
		Name:   "EIB bond 2026",
		Symbol: "EIB26",
		WebURI: "https://example.org/eib26",
	}, emit)
	require.NoError(t, err)
	return l
}

// ---------------------------------------------------------------------------
// Initialization
// ---------------------------------------------------------------------------

func TestInit(t *testing.T) {
	l := newTestLedger(t, nil)
	assert.Equal(t, satAddr, l.Address())
	assert.Equal(t, asset.TokenIDFromUint64(1), l.TokenID())
	assert.Equal(t, "EIB bond 2026", l.Name())
	assert.Equal(t, "EIB26", l.Symbol())
	assert.Equal(t, uint64(0), l.TotalSupply())
}

func TestInit_Once(t *testing.T) {
	l := newTestLedger(t, nil)
	err := l.Init(satAddr, owner, asset.TokenIDFromUint64(1), Details{}, nil)
	assert.ErrorIs(t, err, ErrInvalidInitialization)
}

func TestInit_ZeroAddresses(t *testing.T) {
	err := New().Init(asset.ZeroAddress, owner, asset.TokenIDFromUint64(1), Details{}, nil)
	assert.ErrorIs(t, err, ErrZeroAddressCheck)

	err = New().Init(satAddr, asset.ZeroAddress, asset.TokenIDFromUint64(1), Details{}, nil)
	assert.ErrorIs(t, err, ErrZeroAddressCheck)
}

// ---------------------------------------------------------------------------
// Owner-only mutations
// ---------------------------------------------------------------------------

func TestMintBurnTransfer(t *testing.T) {
	l := newTestLedger(t, nil)

	require.NoError(t, l.Mint(owner, alice, 100))
	assert.Equal(t, uint64(100), l.BalanceOf(alice))
	assert.Equal(t, uint64(100), l.TotalSupply())

	require.NoError(t, l.Transfer(owner, alice, bob, 30))
	assert.Equal(t, uint64(70), l.BalanceOf(alice))
	assert.Equal(t, uint64(30), l.BalanceOf(bob))
	assert.Equal(t, uint64(100), l.TotalSupply())

	require.NoError(t, l.Burn(owner, bob, 10))
	assert.Equal(t, uint64(20), l.BalanceOf(bob))
	assert.Equal(t, uint64(90), l.TotalSupply())
}

func TestMutations_OwnerOnly(t *testing.T) {
	l := newTestLedger(t, nil)
	require.NoError(t, l.Mint(owner, alice, 100))

	assert.ErrorIs(t, l.Mint(alice, alice, 1), ErrUnauthorized)
	assert.ErrorIs(t, l.Burn(alice, alice, 1), ErrUnauthorized)
	assert.ErrorIs(t, l.Transfer(alice, alice, bob, 1), ErrUnauthorized,
		"holders cannot move their own mirrored balance")

	assert.Equal(t, uint64(100), l.BalanceOf(alice))
}

func TestMutations_Uninitialized(t *testing.T) {
	l := New()
	assert.ErrorIs(t, l.Mint(owner, alice, 1), ErrUnauthorized)
}

func TestInsufficientBalance(t *testing.T) {
	l := newTestLedger(t, nil)
	require.NoError(t, l.Mint(owner, alice, 10))

	assert.ErrorIs(t, l.Burn(owner, alice, 11), ErrInsufficientBalance)
	assert.ErrorIs(t, l.Transfer(owner, alice, bob, 11), ErrInsufficientBalance)
	assert.Equal(t, uint64(10), l.BalanceOf(alice))
}

// ---------------------------------------------------------------------------
// Disabled public surface
// ---------------------------------------------------------------------------

func TestDisabledSurface(t *testing.T) {
	l := newTestLedger(t, nil)
	require.NoError(t, l.Mint(owner, alice, 100))

	assert.ErrorIs(t, l.Approve(alice, bob, 10), ErrDisabled)
	assert.ErrorIs(t, l.TransferFrom(bob, alice, bob, 10), ErrDisabled)

	_, err := l.Allowance(alice, bob)
	assert.ErrorIs(t, err, ErrDisabled)
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

func TestEvents(t *testing.T) {
	var events []TransferEvent
	l := newTestLedger(t, func(ev TransferEvent) { events = append(events, ev) })

	require.NoError(t, l.Mint(owner, alice, 100))
	require.NoError(t, l.Transfer(owner, alice, bob, 0))
	require.NoError(t, l.Burn(owner, alice, 40))

	require.Len(t, events, 3)

	assert.Equal(t, asset.ZeroAddress, events[0].From, "mint comes from the zero address")
	assert.Equal(t, alice, events[0].To)
	assert.Equal(t, uint64(100), events[0].Amount)

	assert.Equal(t, uint64(0), events[1].Amount, "zero-amount transfer is still signalled")
	assert.Equal(t, alice, events[1].From)
	assert.Equal(t, bob, events[1].To)

	assert.Equal(t, asset.ZeroAddress, events[2].To, "burn goes to the zero address")
	assert.Equal(t, satAddr, events[2].Satellite)
	assert.Equal(t, asset.TokenIDFromUint64(1), events[2].TokenID)
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

func TestRestoreBalances(t *testing.T) {
	l := newTestLedger(t, nil)

	assert.ErrorIs(t, l.RestoreBalances(alice, nil), ErrUnauthorized)

	require.NoError(t, l.RestoreBalances(owner, map[asset.Address]uint64{
		alice: 60,
		bob:   40,
	}))
	assert.Equal(t, uint64(60), l.BalanceOf(alice))
	assert.Equal(t, uint64(40), l.BalanceOf(bob))
	assert.Equal(t, uint64(100), l.TotalSupply())

	got := l.Balances()
	got[alice] = 0
	assert.Equal(t, uint64(60), l.BalanceOf(alice), "Balances returns a copy")
}
