package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/manifest"
	"github.com/mrz1836/integrityforge/internal/tui"
)

// AddValidateCommand adds the validate command to the root command.
func AddValidateCommand(root *cobra.Command, flags *GlobalFlags) {
	var (
		algorithm string
		workers   int
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate files against a digest manifest",
		Long: `Validate every file listed in a digest manifest.

Each line holds a digest and a path. Lines are independent: one mismatch
never stops the rest of the batch. The process exit code is the automation
signal: 0 all passed, 1 at least one failed, 2 operational error,
3 configuration rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.StrictMode = strict
			}
			if workers > 0 {
				cfg.MaxWorkers = workers
			}

			engine, err := cfg.DigestEngine()
			if err != nil {
				return err
			}
			ruleSet, err := cfg.RuleSet()
			if err != nil {
				return err
			}

			defaultAlgo := digest.SHA256
			if algorithm != "" {
				if defaultAlgo, err = digest.ParseAlgorithm(algorithm); err != nil {
					return err
				}
			}

			ctx := GetLogger().WithContext(cmd.Context())

			f, err := os.Open(args[0]) //nolint:gosec // G304: manifest path is user input
			if err != nil {
				return errors.Wrapf(errors.ErrIO, "opening manifest %s: %v", args[0], err)
			}
			m, parseErr := manifest.Parse(f, args[0], defaultAlgo)
			_ = f.Close()
			if parseErr != nil {
				return parseErr
			}

			processor := manifest.NewProcessor(engine, ruleSet, cfg.MaxWorkers)
			summary, err := processor.ValidateBatch(ctx, m)
			if err != nil {
				return err
			}

			if flags.Output == OutputJSON {
				if err := tui.NewJSONOutput(cmd.OutOrStdout()).JSON(summary); err != nil {
					return err
				}
			} else {
				tui.CheckNoColor()
				_, _ = fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(summary))
			}

			if !summary.Ok() {
				zerolog.Ctx(ctx).Warn().
					Int("failed", summary.Failed).
					Int("errored", summary.Errored).
					Int("parse_errors", len(summary.ParseErrors)).
					Msg("validation did not pass")
				// The summary is already printed; only the code matters.
				return &ExitError{
					Code: summary.ExitCode(),
					Err:  errors.Wrapf(errors.ErrValidationFailed, "%s", args[0]),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "default algorithm for lines without a directive")
	cmd.Flags().IntVar(&workers, "workers", 0, "max concurrent file validations (0 = CPU count)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail paths that match no rule")

	root.AddCommand(cmd)
}
