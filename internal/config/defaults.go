package config

import (
	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/rules"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		// ChunkSize: 8 KiB keeps memory bounded regardless of file size
		// while staying close to common filesystem block sizes.
		ChunkSize: constants.DefaultChunkSize,

		// MaxWorkers: 0 means one worker per available CPU.
		MaxWorkers: 0,

		// StrictMode: false so unmatched paths pass and unknown config
		// keys are tolerated. CI environments typically enable it.
		StrictMode: false,

		// RequireMode: "any" means one satisfied required rule is enough
		// when several match the same path.
		RequireMode: string(rules.RequireAny),

		// SignatureRequired: false so unsigned records still verify by
		// digest recomputation.
		SignatureRequired: false,

		// Algorithms: all supported algorithms are allowed by default.
		// Tighten the list to pin a deployment to a single algorithm.
		Algorithms: []string{
			string(digest.SHA256),
			string(digest.SHA3256),
			string(digest.BLAKE3),
		},

		Attestation: AttestationConfig{
			// Backend: the built-in Ed25519 signer needs no external
			// key management.
			Backend: BackendEd25519,

			// Sign: records are signed whenever a key is available.
			Sign: true,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}
