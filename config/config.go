// Package config holds the ledger deployment configuration: storage
// location, logging, token identity and initial governance operators.
// Configuration is loaded from a TOML file and validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/secledger/libsecledger-go/asset"
)

// Config holds all deployment configuration values.
type Config struct {
	// DataDir is where the bbolt ledger database lives.
	DataDir string `toml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// TokenName and TokenSymbol describe the deployment.
	TokenName   string `toml:"token_name"`
	TokenSymbol string `toml:"token_symbol"`

	// BaseURI prefixes every position's metadata URI.
	BaseURI string `toml:"base_uri"`

	// Registrar and Technical are the initial governance operators,
	// 40-character hex addresses.
	Registrar string `toml:"registrar"`
	Technical string `toml:"technical"`
}

// DefaultConfig returns a configuration with sensible defaults. The
// operators have no default; a deployment must name them explicitly.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:  filepath.Join(home, ".secledger"),
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML configuration file, layered over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Operators parses the configured operator addresses.
func (c Config) Operators() (registrar, technical asset.Address, err error) {
	if registrar, err = parseOperator("registrar", c.Registrar); err != nil {
		return
	}
	technical, err = parseOperator("technical", c.Technical)
	return
}

// parseOperator parses one hex operator address, rejecting the zero address.
func parseOperator(role, s string) (asset.Address, error) {
	a, err := asset.AddressFromHex(s)
	if err != nil {
		return asset.ZeroAddress, fmt.Errorf("%w: %s: %v", ErrInvalidOperatorAddress, role, err)
	}
	if a.IsZero() {
		return asset.ZeroAddress, fmt.Errorf("%w: %s is zero", ErrInvalidOperatorAddress, role)
	}
	return a, nil
}
