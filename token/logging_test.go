package token

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf))

	sink.Emit(TransferSingle{
		Operator: regAgent,
		From:     investorA,
		To:       investorB,
		TokenID:  testToken,
		Amount:   30,
	})
	sink.Emit(LockUpdated{TransactionID: txOne, Status: StatusValidated})

	out := buf.String()
	assert.Contains(t, out, `"event":"TransferSingle"`)
	assert.Contains(t, out, `"amount":30`)
	assert.Contains(t, out, investorA.String())
	assert.Contains(t, out, `"event":"LockUpdated"`)
	assert.Contains(t, out, `"status":"Validated"`)
}

func TestZerologSink_ObservesService(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(Params{
		Name:      "secledger",
		Registrar: registrar,
		Technical: technical,
		Sink:      NewZerologSink(zerolog.New(&buf)),
	})
	require.NoError(t, err)

	require.NoError(t, s.Mint(registrar, investorA, testToken, 10, mintPayload(t, false)))
	assert.Contains(t, buf.String(), `"event":"TransferSingle"`)
}

func TestTeeSink(t *testing.T) {
	a := &MemorySink{}
	b := &MemorySink{}
	tee := TeeSink{a, b}

	tee.Emit(Paused{Account: registrar})

	require.Len(t, a.Events, 1)
	require.Len(t, b.Events, 1)
	assert.Equal(t, "Paused", a.Last().EventName())
}

func TestMemorySink(t *testing.T) {
	sink := &MemorySink{}
	assert.Nil(t, sink.Last())

	sink.Emit(Paused{Account: registrar})
	sink.Emit(Unpaused{Account: registrar})
	sink.Emit(Paused{Account: technical})

	assert.Len(t, sink.Named("Paused"), 2)
	assert.Empty(t, sink.Named("Upgraded"))
	assert.Equal(t, "Paused", sink.Last().EventName())
	assert.Equal(t, technical, sink.Last().(Paused).Account)
}
