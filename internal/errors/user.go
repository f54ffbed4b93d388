package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Validation
	// ===================
	{
		err: ErrDigestMismatch,
		info: ErrorInfo{
			Message: "File content does not match the expected digest.",
			Action:  "Re-download or restore the file, then validate again.",
		},
	},
	{
		err: ErrValidationFailed,
		info: ErrorInfo{
			Message: "One or more files failed integrity validation.",
			Action:  "Check the per-file results above for the failing entries.",
		},
	},
	{
		err: ErrNoMatchingRule,
		info: ErrorInfo{
			Message: "No validation rule matches this path and strict mode is enabled.",
			Action:  "Add a rule covering the path or disable strict_mode.",
		},
	},
	{
		err: ErrRuleUnsatisfied,
		info: ErrorInfo{
			Message: "A required validation rule was not satisfied for this path.",
			Action:  "Use an algorithm permitted by the matching rules, or adjust require_mode.",
		},
	},
	{
		err: ErrManifestParse,
		info: ErrorInfo{
			Message: "The manifest contains malformed lines.",
			Action:  "Fix the reported lines; the format is '<hex-digest>  <relative-path>'.",
		},
	},

	// ===================
	// Attestation
	// ===================
	{
		err: ErrSignatureInvalid,
		info: ErrorInfo{
			Message: "The attestation signature did not verify. The record may have been tampered with.",
			Action:  "Re-generate the attestation from a trusted source.",
		},
	},
	{
		err: ErrSignatureRequired,
		info: ErrorInfo{
			Message: "The attestation is unsigned but signature_required is enabled.",
			Action:  "Sign the attestation or disable signature_required.",
		},
	},
	{
		err: ErrSignerUnavailable,
		info: ErrorInfo{
			Message: "Signing was requested but no signing key is configured.",
			Action:  "Configure a signing backend or run without --sign.",
		},
	},
	{
		err: ErrAttestationMalformed,
		info: ErrorInfo{
			Message: "The attestation record is missing required fields or cannot be decoded.",
			Action:  "Verify the attestation file was produced by integrityforge and not edited.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "Configuration is invalid. No files were processed.",
			Action:  "Run 'integrityforge config validate' for details.",
		},
	},
	{
		err: ErrUnknownConfigKey,
		info: ErrorInfo{
			Message: "Configuration contains unrecognized keys and strict mode is enabled.",
			Action:  "Remove the unknown keys or disable strict_mode.",
		},
	},
	{
		err: ErrUnsupportedAlgorithm,
		info: ErrorInfo{
			Message: "The requested digest algorithm is not in the configured allow-list.",
			Action:  "Use one of the allowed algorithms or extend 'algorithms' in the config.",
		},
	},

	// ===================
	// I/O
	// ===================
	{
		err: ErrIO,
		info: ErrorInfo{
			Message: "A file could not be read or written.",
			Action:  "Check that the path exists and permissions allow access.",
		},
	},
	{
		err: ErrNotRegularFile,
		info: ErrorInfo{
			Message: "The target path is not a regular file.",
			Action:  "Point at a file, not a directory or special file.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
