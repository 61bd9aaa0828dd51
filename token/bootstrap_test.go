package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secledger/libsecledger-go/config"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.TokenName = "EIB bonds"
	cfg.TokenSymbol = "EIB"
	cfg.BaseURI = "https://tokens.example/"
	cfg.Registrar = registrar.String()
	cfg.Technical = technical.String()
	return cfg
}

func TestParamsFromConfig(t *testing.T) {
	sink := &MemorySink{}
	p, err := ParamsFromConfig(testConfig(), sink)
	require.NoError(t, err)

	assert.Equal(t, "EIB bonds", p.Name)
	assert.Equal(t, "EIB", p.Symbol)
	assert.Equal(t, "https://tokens.example/", p.BaseURI)
	assert.Equal(t, registrar, p.Registrar)
	assert.Equal(t, technical, p.Technical)
	assert.Same(t, sink, p.Sink.(*MemorySink))

	s, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, registrar, s.Registrar())
	assert.False(t, s.Address().IsZero(), "address derived from name and operators")
}

func TestParamsFromConfig_Invalid(t *testing.T) {
	cfg := testConfig()
	cfg.TokenName = ""
	_, err := ParamsFromConfig(cfg, nil)
	assert.ErrorIs(t, err, config.ErrEmptyTokenName)

	cfg = testConfig()
	cfg.Technical = strings.Repeat("00", 20)
	_, err = ParamsFromConfig(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidOperatorAddress)
}
