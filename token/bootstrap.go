package token

import "github.com/secledger/libsecledger-go/config"

// ParamsFromConfig builds service parameters from a validated deployment
// configuration. The sink stays runtime wiring and is not part of the
// configuration file.
func ParamsFromConfig(cfg config.Config, sink Sink) (Params, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return Params{}, err
	}
	registrar, technical, err := cfg.Operators()
	if err != nil {
		return Params{}, err
	}
	return Params{
		Name:      cfg.TokenName,
		Symbol:    cfg.TokenSymbol,
		BaseURI:   cfg.BaseURI,
		Registrar: registrar,
		Technical: technical,
		Sink:      sink,
	}, nil
}
