package config

import (
	"github.com/rs/zerolog"

	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// maxWorkerCap bounds max_workers to catch typos like 10000.
const maxWorkerCap = 1024

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - chunk_size must be between 512 bytes and 16 MiB
//   - max_workers must be between 0 and 1024
//   - require_mode must be "any" or "all"
//   - algorithms must be a non-empty list of supported algorithm names
//   - rules must construct a valid rule set
//   - attestation.backend must be "ed25519" or "pgp"
//   - logging level and format must be recognized
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.ChunkSize < constants.MinChunkSize || cfg.ChunkSize > constants.MaxChunkSize {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"chunk_size must be between %d and %d, got %d",
			constants.MinChunkSize, constants.MaxChunkSize, cfg.ChunkSize)
	}

	if cfg.MaxWorkers < 0 || cfg.MaxWorkers > maxWorkerCap {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"max_workers must be between 0 and %d, got %d", maxWorkerCap, cfg.MaxWorkers)
	}

	if _, err := cfg.ParsedAlgorithms(); err != nil {
		return err
	}

	// Constructing the rule set exercises every rule-level check: names,
	// patterns, severities, and the require mode.
	if _, err := cfg.RuleSet(); err != nil {
		return err
	}

	if err := validateAttestationConfig(&cfg.Attestation); err != nil {
		return err
	}

	return validateLoggingConfig(&cfg.Logging)
}

// validateAttestationConfig checks attestation-specific configuration values.
func validateAttestationConfig(cfg *AttestationConfig) error {
	switch cfg.Backend {
	case BackendEd25519:
		return nil
	case BackendPGP:
		if cfg.Sign && cfg.Keyring == "" {
			return errors.Wrap(errors.ErrConfigInvalid,
				"attestation.keyring is required when the pgp backend signs records")
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"attestation.backend must be %q or %q, got %q",
			BackendEd25519, BackendPGP, cfg.Backend)
	}
}

// validateLoggingConfig checks logging-specific configuration values.
func validateLoggingConfig(cfg *LoggingConfig) error {
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"logging.level %q is not a valid level", cfg.Level)
	}

	switch cfg.Format {
	case "auto", "json", "console":
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"logging.format must be auto, json, or console, got %q", cfg.Format)
	}
}
