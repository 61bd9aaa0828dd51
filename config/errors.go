package config

import "errors"

var (
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrEmptyTokenName indicates the ledger name is empty.
	ErrEmptyTokenName = errors.New("config: token name must not be empty")

	// ErrInvalidOperatorAddress indicates an operator address that does not
	// parse as 20-byte hex, or is zero.
	ErrInvalidOperatorAddress = errors.New("config: invalid operator address")

	// ErrOperatorsNotDistinct indicates the registrar and technical operators
	// share an address.
	ErrOperatorsNotDistinct = errors.New("config: registrar and technical must be distinct")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
