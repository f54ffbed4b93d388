// Package cli provides the command-line interface for integrityforge.
package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = "text"
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = "json"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// ConfigFile is an explicit config file path that replaces the
	// project-level config when set.
	ConfigFile string
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "config file (default .integrityforge/config.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper for configuration file and
// environment variable support. The INTEGRITYFORGE_ prefix is used for
// environment variables (e.g., INTEGRITYFORGE_OUTPUT).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	if err := v.BindPFlag("output", rootFlags.Lookup("output")); err != nil {
		return err
	}
	if err := v.BindPFlag("verbose", rootFlags.Lookup("verbose")); err != nil {
		return err
	}
	if err := v.BindPFlag("quiet", rootFlags.Lookup("quiet")); err != nil {
		return err
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// ExitError carries an explicit process exit code. Commands return it when
// the outcome is already reported to the user and only the code matters.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeForError maps an error to the process exit code. The exit code is
// the sole automation signal for scripted callers:
//
//	0  everything passed
//	1  validation failed (mismatch, unsatisfied rule, bad manifest line,
//	   invalid or missing-but-required signature)
//	2  operational error (unreadable file, cancelled run, usage error)
//	3  configuration rejected before any processing began
func ExitCodeForError(err error) int {
	if err == nil {
		return constants.ExitPassed
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case stderrors.Is(err, errors.ErrConfigNil),
		stderrors.Is(err, errors.ErrConfigInvalid),
		stderrors.Is(err, errors.ErrUnknownConfigKey),
		stderrors.Is(err, errors.ErrInvalidOutputFormat),
		stderrors.Is(err, errors.ErrUnsupportedAlgorithm):
		return constants.ExitConfigInvalid

	case stderrors.Is(err, errors.ErrDigestMismatch),
		stderrors.Is(err, errors.ErrValidationFailed),
		stderrors.Is(err, errors.ErrRuleUnsatisfied),
		stderrors.Is(err, errors.ErrNoMatchingRule),
		stderrors.Is(err, errors.ErrManifestParse),
		stderrors.Is(err, errors.ErrSignatureInvalid),
		stderrors.Is(err, errors.ErrSignatureRequired),
		stderrors.Is(err, errors.ErrAttestationMalformed):
		return constants.ExitFailed

	default:
		return constants.ExitErrored
	}
}

// IsUsageError checks if an error message indicates invalid CLI usage.
// This catches Cobra's built-in flag validation errors.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	usagePatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"accepts at least",
		"accepts at most",
	}

	for _, pattern := range usagePatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
