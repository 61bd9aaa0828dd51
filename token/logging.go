package token

import "github.com/rs/zerolog"

// ZerologSink logs every emitted ledger event as a structured log line.
// Wrap it around another sink with TeeSink when events must also reach an
// indexer.
type ZerologSink struct {
	log zerolog.Logger
}

// NewZerologSink creates a sink logging through the given logger.
func NewZerologSink(log zerolog.Logger) *ZerologSink {
	return &ZerologSink{log: log}
}

// Emit implements Sink.
func (z *ZerologSink) Emit(e Event) {
	ev := z.log.Info().Str("event", e.EventName())
	switch e := e.(type) {
	case NamedNewOperators:
		ev.Str("registrar", e.Registrar.String()).Str("technical", e.Technical.String())
	case AcceptedRegistrarRole:
		ev.Str("registrar", e.Registrar.String())
	case AcceptedTechnicalRole:
		ev.Str("technical", e.Technical.String())
	case ImplementationAuthorized:
		ev.Str("implementation", e.Implementation.String())
	case Upgraded:
		ev.Str("implementation", e.Implementation.String()).Str("version", e.Version)
	case Paused:
		ev.Str("account", e.Account.String())
	case Unpaused:
		ev.Str("account", e.Account.String())
	case NewSatellite:
		ev.Str("token_id", e.TokenID.String()).Str("satellite", e.Satellite.String())
	case RegistrarAgentUpdated:
		ev.Str("token_id", e.TokenID.String()).Str("old", e.Old.String()).Str("new", e.New.String())
	case SettlementAgentUpdated:
		ev.Str("token_id", e.TokenID.String()).Str("old", e.Old.String()).Str("new", e.New.String())
	case URIChanged:
		ev.Str("token_id", e.TokenID.String()).Str("uri", e.URI)
	case WebURIChanged:
		ev.Str("token_id", e.TokenID.String()).Str("uri", e.URI)
	case TransferSingle:
		ev.Str("operator", e.Operator.String()).Str("from", e.From.String()).
			Str("to", e.To.String()).Str("token_id", e.TokenID.String()).Uint64("amount", e.Amount)
	case LockReady:
		ev.Str("transaction_id", e.TransactionID).Str("registrar_agent", e.RegistrarAgent.String()).
			Str("from", e.From.String()).Str("to", e.To.String()).
			Str("token_id", e.TokenID.String()).Uint64("amount", e.Amount)
	case LockUpdated:
		ev.Str("transaction_id", e.TransactionID).Str("registrar_agent", e.RegistrarAgent.String()).
			Str("from", e.From.String()).Str("to", e.To.String()).
			Str("token_id", e.TokenID.String()).Str("status", e.Status.String())
	case SatelliteTransfer:
		ev.Str("satellite", e.Satellite.String()).Str("token_id", e.TokenID.String()).
			Str("from", e.From.String()).Str("to", e.To.String()).Uint64("amount", e.Amount)
	}
	ev.Msg("ledger event")
}

// TeeSink fans an event out to several sinks in order.
type TeeSink []Sink

// Emit implements Sink.
func (t TeeSink) Emit(e Event) {
	for _, s := range t {
		s.Emit(e)
	}
}
