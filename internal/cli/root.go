// Package cli provides the command-line interface for integrityforge.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/integrityforge/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the integrityforge CLI.
// This function-based approach avoids package-level globals, making the
// code more testable.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "integrityforge",
		Short: "integrityforge - file integrity validation and attestation",
		Long: `integrityforge validates file integrity against digest manifests and
produces signed attestation records for audit trails.

Features:
  • Streaming digests (sha256, sha3-256, blake3) with bounded memory
  • Manifest batch validation with a bounded worker pool
  • Glob-based validation rules with required/any/all semantics
  • Signed, append-only attestation records (Ed25519 or OpenPGP)
  • Layered configuration: flags > env > project > global > defaults`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands. This ensures PersistentPreRunE is called for flag
		// validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		// SilenceUsage and SilenceErrors prevent cobra from printing usage
		// and "Error: ..." lines on failure; Execute reports every error
		// exactly once, through the user-facing message table. This keeps
		// stdout clean for machine-readable output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddHashCommand(cmd, flags)
	AddValidateCommand(cmd, flags)
	AddAttestCommand(cmd, flags)
	AddVerifyCommand(cmd, flags)
	AddConfigCommand(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are reported to stderr here, once, so main only maps the exit code.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		reportError(cmd.ErrOrStderr(), err)
	}
	return err
}

// reportError prints a failure to w. Usage errors keep cobra's wording plus
// a help pointer; everything else goes through the user-facing message
// table, with the suggested action when one exists.
func reportError(w io.Writer, err error) {
	if IsUsageError(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "Run 'integrityforge --help' for usage.")
		return
	}

	if msg, action := errors.Actionable(err); action != "" {
		fmt.Fprintf(w, "Error: %s\n  %s\n", msg, action)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", errors.UserMessage(err))
}
