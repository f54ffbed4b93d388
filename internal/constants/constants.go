// Package constants provides centralized constant values used throughout integrityforge.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory and file names used for persistent state.
const (
	// AppHome is the hidden directory name where integrityforge stores its data.
	// This directory is created in the user's home directory.
	AppHome = ".integrityforge"

	// ProjectConfigDir is the per-project configuration directory name.
	ProjectConfigDir = ".integrityforge"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "integrityforge.log"

	// KeysDir is the directory name where native signing keys are stored.
	KeysDir = "keys"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation, in megabytes.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 5

	// LogMaxAgeDays is the maximum age of a rotated log file, in days.
	LogMaxAgeDays = 30

	// LogCompress controls whether rotated log files are gzip-compressed.
	LogCompress = true
)

// EnvPrefix is the prefix for environment variable configuration overrides
// (e.g. INTEGRITYFORGE_CHUNK_SIZE, INTEGRITYFORGE_STRICT_MODE).
const EnvPrefix = "INTEGRITYFORGE"

// Digest computation defaults.
const (
	// DefaultChunkSize is the default streaming read size in bytes.
	// Files are never materialized whole; they are hashed chunk by chunk.
	DefaultChunkSize = 8192

	// MinChunkSize is the smallest permitted chunk size.
	MinChunkSize = 512

	// MaxChunkSize is the largest permitted chunk size (16 MiB).
	MaxChunkSize = 16 * 1024 * 1024
)

// AttestorName identifies this tool in generated attestation records.
const AttestorName = "integrityforge"

// Exit codes emitted by the CLI. The process exit code is the sole
// automation signal for scripted callers.
const (
	// ExitPassed indicates every validated entry passed.
	ExitPassed = 0

	// ExitFailed indicates at least one entry failed validation.
	ExitFailed = 1

	// ExitErrored indicates an operational error (unreadable file, cancelled run).
	ExitErrored = 2

	// ExitConfigInvalid indicates configuration was rejected before any
	// processing began.
	ExitConfigInvalid = 3
)
