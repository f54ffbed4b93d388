package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/integrityforge/internal/attest"
	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/tui"
)

// verifyResult is the JSON shape of one verified record.
type verifyResult struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Valid  bool   `json:"valid"`
	Signed bool   `json:"signed"`
	Error  string `json:"error,omitempty"`
}

// AddVerifyCommand adds the verify command to the root command.
func AddVerifyCommand(root *cobra.Command, flags *GlobalFlags) {
	var (
		filePath         string
		requireSignature bool
	)

	cmd := &cobra.Command{
		Use:   "verify <attestation-file>",
		Short: "Verify attestation records",
		Long: `Verify every attestation record in a file.

A signed record's detached signature is checked against its canonical
payload; a tampered record fails as a signature error, distinct from a
digest mismatch. When the attested file is still locally accessible its
digest is recomputed and compared. Use --file to verify the records
against a different local path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("require-signature") {
				cfg.SignatureRequired = requireSignature
			}

			engine, err := cfg.DigestEngine()
			if err != nil {
				return err
			}
			cryptoVerifier, err := newVerifier(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := GetLogger().WithContext(cmd.Context())
			log := zerolog.Ctx(ctx)

			f, err := os.Open(args[0]) //nolint:gosec // G304: attestation path is user input
			if err != nil {
				return errors.Wrapf(errors.ErrIO, "opening attestation file %s: %v", args[0], err)
			}
			records, err := attest.ReadRecords(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			verifier := attest.NewVerifier(engine, cryptoVerifier, cfg.SignatureRequired)
			out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)

			results := make([]verifyResult, 0, len(records))
			failed, errored := 0, 0
			for _, rec := range records {
				verifyErr := verifier.Verify(ctx, rec, filePath)
				res := verifyResult{
					ID:     rec.ID,
					Path:   rec.Path,
					Valid:  verifyErr == nil,
					Signed: rec.Signature != "",
				}
				if verifyErr != nil {
					// Operational failures (unreadable file, missing
					// verifier) are errored, not failed.
					if ExitCodeForError(verifyErr) == constants.ExitErrored {
						errored++
					} else {
						failed++
					}
					res.Error = verifyErr.Error()
					out.Error(fmt.Errorf("%s: %w", rec.Path, verifyErr))
				} else {
					out.Success(rec.Path)
				}
				results = append(results, res)
			}

			if flags.Output == OutputJSON {
				if err := tui.NewJSONOutput(cmd.OutOrStdout()).JSON(results); err != nil {
					return err
				}
			}

			if failed > 0 || errored > 0 {
				log.Warn().Int("failed", failed).Int("errored", errored).
					Int("records", len(records)).Msg("verification failed")
				code := constants.ExitFailed
				if errored > 0 {
					code = constants.ExitErrored
				}
				return &ExitError{
					Code: code,
					Err:  errors.Wrapf(errors.ErrValidationFailed, "%d of %d records failed", failed+errored, len(records)),
				}
			}

			log.Info().Int("records", len(records)).Msg("all records verified")
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "verify records against this local path")
	cmd.Flags().BoolVar(&requireSignature, "require-signature", false, "reject unsigned records")

	root.AddCommand(cmd)
}
