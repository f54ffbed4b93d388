// Package errors provides centralized error handling for integrityforge.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrIO indicates a file could not be read or written. Per-file I/O
	// errors are surfaced once and never retried.
	ErrIO = errors.New("i/o error")

	// ErrUnsupportedAlgorithm indicates a digest algorithm outside the
	// configured allow-list was requested. This is a configuration-time
	// failure and aborts before any processing begins.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

	// ErrManifestParse indicates a malformed manifest line. Parse errors
	// are collected per line and are non-fatal to the batch.
	ErrManifestParse = errors.New("manifest parse error")

	// ErrDigestMismatch indicates the observed digest differs from the
	// expected digest. This is a normal Failed outcome, not an exception.
	ErrDigestMismatch = errors.New("digest mismatch")

	// ErrNoMatchingRule indicates a path matched no validation rule while
	// strict mode was enabled.
	ErrNoMatchingRule = errors.New("no matching rule")

	// ErrRuleUnsatisfied indicates a required validation rule was not
	// satisfied for a path.
	ErrRuleUnsatisfied = errors.New("required rule not satisfied")

	// ErrConfigNil indicates a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates a configuration schema violation. The run
	// aborts before any file is touched (exit 3).
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrUnknownConfigKey indicates an unrecognized configuration key was
	// rejected under strict mode.
	ErrUnknownConfigKey = errors.New("unknown configuration key")

	// ErrSignatureInvalid indicates an attestation signature failed
	// verification. Reported distinctly from a digest mismatch so operators
	// can distinguish "file changed" from "attestation tampered".
	ErrSignatureInvalid = errors.New("attestation signature invalid")

	// ErrSignatureRequired indicates an unsigned attestation was rejected
	// because signature_required is enabled.
	ErrSignatureRequired = errors.New("attestation signature required")

	// ErrSignerUnavailable indicates signing was requested but no signer
	// capability was injected.
	ErrSignerUnavailable = errors.New("no signer available")

	// ErrAttestationMalformed indicates an attestation record is missing
	// required fields or cannot be decoded.
	ErrAttestationMalformed = errors.New("malformed attestation record")

	// ErrValidationFailed indicates one or more batch entries failed
	// validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrOperationFailed indicates an operational error occurred during
	// processing (maps to exit code 2).
	ErrOperationFailed = errors.New("operation failed")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrNotRegularFile indicates the target path exists but is not a
	// regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)
