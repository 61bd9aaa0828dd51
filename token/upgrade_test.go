package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secledger/libsecledger-go/asset"
)

func testImplementation(addr asset.Address, version string) *StaticImplementation {
	return &StaticImplementation{
		Addr:         addr,
		Registrar:    registrar,
		Technical:    technical,
		VersionLabel: version,
	}
}

func TestAuthorizeAndUpgrade(t *testing.T) {
	s, sink := newTestService(t)
	impl := testImplementation(makeAddr(0x30), "v2")

	require.NoError(t, s.AuthorizeImplementation(registrar, impl))
	assert.Equal(t, impl.Addr, s.AuthorizedImplementation())
	assert.Equal(t, impl.Addr, sink.Last().(ImplementationAuthorized).Implementation)

	require.NoError(t, s.Upgrade(technical, impl))
	assert.Equal(t, "v2", s.ImplementationVersion())
	assert.True(t, s.AuthorizedImplementation().IsZero(), "authorization is consumed")

	ev := sink.Last().(Upgraded)
	assert.Equal(t, impl.Addr, ev.Implementation)
	assert.Equal(t, "v2", ev.Version)
}

func TestAuthorizeImplementation_Checks(t *testing.T) {
	s, _ := newTestService(t)
	impl := testImplementation(makeAddr(0x30), "v2")

	assert.ErrorIs(t, s.AuthorizeImplementation(technical, impl), ErrUnauthorizedRegistrar)
	assert.ErrorIs(t, s.AuthorizeImplementation(registrar, nil), ErrZeroAddressCheck)
	assert.ErrorIs(t, s.AuthorizeImplementation(registrar, testImplementation(asset.ZeroAddress, "v2")), ErrZeroAddressCheck)

	wrongReg := testImplementation(makeAddr(0x30), "v2")
	wrongReg.Registrar = stranger
	assert.ErrorIs(t, s.AuthorizeImplementation(registrar, wrongReg), ErrUnauthorizedRegistrar,
		"declared operators must match the accepted roles")

	wrongTech := testImplementation(makeAddr(0x30), "v2")
	wrongTech.Technical = stranger
	assert.ErrorIs(t, s.AuthorizeImplementation(registrar, wrongTech), ErrUnauthorizedTechnical)

	assert.True(t, s.AuthorizedImplementation().IsZero())
}

func TestUpgrade_Checks(t *testing.T) {
	s, _ := newTestService(t)
	impl := testImplementation(makeAddr(0x30), "v2")
	other := testImplementation(makeAddr(0x31), "v3")

	assert.ErrorIs(t, s.Upgrade(technical, impl), ErrUnauthorizedImplementation,
		"no upgrade without a prior authorization")

	require.NoError(t, s.AuthorizeImplementation(registrar, impl))
	assert.ErrorIs(t, s.Upgrade(registrar, impl), ErrUnauthorizedTechnical)
	assert.ErrorIs(t, s.Upgrade(technical, other), ErrUnauthorizedImplementation,
		"target must be the authorized implementation")
	assert.ErrorIs(t, s.Upgrade(technical, nil), ErrZeroAddressCheck)

	require.NoError(t, s.Upgrade(technical, impl))
	assert.ErrorIs(t, s.Upgrade(technical, impl), ErrUnauthorizedImplementation,
		"the consumed authorization cannot be replayed")
}

func TestUpgrade_ReplacedAuthorization(t *testing.T) {
	s, _ := newTestService(t)
	first := testImplementation(makeAddr(0x30), "v2")
	second := testImplementation(makeAddr(0x31), "v3")

	require.NoError(t, s.AuthorizeImplementation(registrar, first))
	require.NoError(t, s.AuthorizeImplementation(registrar, second))

	assert.ErrorIs(t, s.Upgrade(technical, first), ErrUnauthorizedImplementation,
		"a later authorization supersedes the earlier one")
	require.NoError(t, s.Upgrade(technical, second))
	assert.Equal(t, "v3", s.ImplementationVersion())
}

func TestUpgrade_RunsInitializer(t *testing.T) {
	s, _ := newTestService(t)
	impl := testImplementation(makeAddr(0x30), "v2")
	var got *Service
	impl.InitFn = func(svc *Service) error {
		got = svc
		return nil
	}

	require.NoError(t, s.AuthorizeImplementation(registrar, impl))
	require.NoError(t, s.Upgrade(technical, impl))
	assert.Same(t, s, got, "migration step runs inside the upgrade against the live service")
}

func TestImplementation_DirectActivation(t *testing.T) {
	impl := testImplementation(makeAddr(0x30), "v2")
	assert.ErrorIs(t, impl.Activate(nil), ErrUnauthorizedCallContext,
		"an implementation only goes live through Upgrade")
}
