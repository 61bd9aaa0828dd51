package governance

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
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

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := NewState(makeAddr(1), makeAddr(2))
	require.NoError(t, err)
	return s
}

// ---------------------------------------------------------------------------
// Construction and role checks
// ---------------------------------------------------------------------------

func TestNewState(t *testing.T) {
	s := newTestState(t)
	assert.Equal(t, makeAddr(1), s.Registrar())
	assert.Equal(t, makeAddr(2), s.Technical())
	assert.True(t, s.PendingRegistrar().IsZero())
	assert.True(t, s.PendingTechnical().IsZero())
	assert.False(t, s.Paused())
}

func TestNewState_ZeroOperators(t *testing.T) {
	_, err := NewState(asset.ZeroAddress, makeAddr(2))
	assert.ErrorIs(t, err, ErrZeroAddressCheck)

	_, err = NewState(makeAddr(1), asset.ZeroAddress)
	assert.ErrorIs(t, err, ErrZeroAddressCheck)
}

func TestRequireRoles(t *testing.T) {
	s := newTestState(t)

	require.NoError(t, s.RequireRegistrar(makeAddr(1)))
	require.NoError(t, s.RequireTechnical(makeAddr(2)))

	assert.ErrorIs(t, s.RequireRegistrar(makeAddr(2)), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.RequireRegistrar(makeAddr(9)), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.RequireTechnical(makeAddr(1)), ErrUnauthorizedTechnical)
}

// ---------------------------------------------------------------------------
// Two-phase role handover
// ---------------------------------------------------------------------------

func TestNameNewOperators(t *testing.T) {
	s := newTestState(t)

	err := s.NameNewOperators(makeAddr(1), makeAddr(3), makeAddr(4))
	require.NoError(t, err)

	assert.Equal(t, makeAddr(3), s.PendingRegistrar())
	assert.Equal(t, makeAddr(4), s.PendingTechnical())
	assert.Equal(t, makeAddr(1), s.Registrar(), "active roles unchanged until accepted")
	assert.Equal(t, makeAddr(2), s.Technical())
}

func TestNameNewOperators_Checks(t *testing.T) {
	tests := []struct {
		name      string
		caller    asset.Address
		registrar asset.Address
		technical asset.Address
		wantErr   error
	}{
		{"caller not registrar", makeAddr(2), makeAddr(3), makeAddr(4), ErrUnauthorizedRegistrar},
		{"zero registrar", makeAddr(1), asset.ZeroAddress, makeAddr(4), ErrZeroAddressCheck},
		{"zero technical", makeAddr(1), makeAddr(3), asset.ZeroAddress, ErrZeroAddressCheck},
		{"same operator for both roles", makeAddr(1), makeAddr(3), makeAddr(3), ErrInconsistentOperators},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			err := s.NameNewOperators(tt.caller, tt.registrar, tt.technical)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, s.PendingRegistrar().IsZero())
			assert.True(t, s.PendingTechnical().IsZero())
		})
	}
}

func TestAcceptRoles(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.NameNewOperators(makeAddr(1), makeAddr(3), makeAddr(4)))

	require.NoError(t, s.AcceptRegistrarRole(makeAddr(3)))
	assert.Equal(t, makeAddr(3), s.Registrar())
	assert.True(t, s.PendingRegistrar().IsZero(), "pending cleared on acceptance")
	assert.Equal(t, makeAddr(2), s.Technical(), "technical role unaffected")

	require.NoError(t, s.AcceptTechnicalRole(makeAddr(4)))
	assert.Equal(t, makeAddr(4), s.Technical())
	assert.True(t, s.PendingTechnical().IsZero())
}

func TestAcceptRoles_WrongCaller(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.NameNewOperators(makeAddr(1), makeAddr(3), makeAddr(4)))

	assert.ErrorIs(t, s.AcceptRegistrarRole(makeAddr(1)), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.AcceptRegistrarRole(makeAddr(4)), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.AcceptTechnicalRole(makeAddr(3)), ErrUnauthorizedTechnical)

	assert.Equal(t, makeAddr(1), s.Registrar())
	assert.Equal(t, makeAddr(2), s.Technical())
}

func TestAcceptRoles_NothingPending(t *testing.T) {
	s := newTestState(t)
	assert.ErrorIs(t, s.AcceptRegistrarRole(makeAddr(3)), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.AcceptTechnicalRole(makeAddr(4)), ErrUnauthorizedTechnical)
}

func TestNameNewOperators_Replaces(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.NameNewOperators(makeAddr(1), makeAddr(3), makeAddr(4)))
	require.NoError(t, s.NameNewOperators(makeAddr(1), makeAddr(5), makeAddr(6)))

	assert.ErrorIs(t, s.AcceptRegistrarRole(makeAddr(3)), ErrUnauthorizedRegistrar)
	require.NoError(t, s.AcceptRegistrarRole(makeAddr(5)))
	assert.Equal(t, makeAddr(5), s.Registrar())
}

// ---------------------------------------------------------------------------
// Pause control
// ---------------------------------------------------------------------------

func TestPauseUnpause(t *testing.T) {
	s := newTestState(t)

	assert.ErrorIs(t, s.Pause(makeAddr(2)), ErrUnauthorizedRegistrar, "technical operator cannot pause")
	require.NoError(t, s.Pause(makeAddr(1)))
	assert.True(t, s.Paused())
	assert.ErrorIs(t, s.RequireNotPaused(), ErrEnforcedPause)

	assert.ErrorIs(t, s.Pause(makeAddr(1)), ErrEnforcedPause, "already paused")

	assert.ErrorIs(t, s.Unpause(makeAddr(2)), ErrUnauthorizedRegistrar)
	require.NoError(t, s.Unpause(makeAddr(1)))
	assert.False(t, s.Paused())
	require.NoError(t, s.RequireNotPaused())

	assert.ErrorIs(t, s.Unpause(makeAddr(1)), ErrExpectedPause, "not paused")
}

// ---------------------------------------------------------------------------
// Upgrade authorization
// ---------------------------------------------------------------------------

func TestAuthorizeImplementation(t *testing.T) {
	s := newTestState(t)

	assert.ErrorIs(t, s.AuthorizeImplementation(makeAddr(2), makeAddr(7)), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.AuthorizeImplementation(makeAddr(1), asset.ZeroAddress), ErrZeroAddressCheck)

	require.NoError(t, s.AuthorizeImplementation(makeAddr(1), makeAddr(7)))
	assert.Equal(t, makeAddr(7), s.AuthorizedImplementation())
}

func TestConsumeAuthorizedImplementation(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.AuthorizeImplementation(makeAddr(1), makeAddr(7)))

	assert.ErrorIs(t, s.ConsumeAuthorizedImplementation(makeAddr(1), makeAddr(7)), ErrUnauthorizedTechnical,
		"registrar cannot trigger the upgrade")
	assert.ErrorIs(t, s.ConsumeAuthorizedImplementation(makeAddr(2), makeAddr(8)), ErrUnauthorizedImplementation,
		"target must match the authorized implementation")

	require.NoError(t, s.ConsumeAuthorizedImplementation(makeAddr(2), makeAddr(7)))
	assert.True(t, s.AuthorizedImplementation().IsZero(), "authorization is single use")

	assert.ErrorIs(t, s.ConsumeAuthorizedImplementation(makeAddr(2), makeAddr(7)), ErrUnauthorizedImplementation)
}

// ---------------------------------------------------------------------------
// Snapshot round-trip
// ---------------------------------------------------------------------------

func TestSnapshotRestore(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.NameNewOperators(makeAddr(1), makeAddr(3), makeAddr(4)))
	require.NoError(t, s.AuthorizeImplementation(makeAddr(1), makeAddr(7)))
	require.NoError(t, s.Pause(makeAddr(1)))

	raw, err := cbor.Marshal(s.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, cbor.Unmarshal(raw, &snap))

	got := Restore(snap)
	assert.Equal(t, s.Registrar(), got.Registrar())
	assert.Equal(t, s.Technical(), got.Technical())
	assert.Equal(t, s.PendingRegistrar(), got.PendingRegistrar())
	assert.Equal(t, s.PendingTechnical(), got.PendingTechnical())
	assert.Equal(t, s.AuthorizedImplementation(), got.AuthorizedImplementation())
	assert.Equal(t, s.Paused(), got.Paused())
}
