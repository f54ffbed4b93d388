package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/integrityforge/internal/attest"
	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/tui"
)

// AddAttestCommand adds the attest command to the root command.
func AddAttestCommand(root *cobra.Command, flags *GlobalFlags) {
	var (
		algorithm string
		outFile   string
		format    string
		metadata  []string
		noSign    bool
	)

	cmd := &cobra.Command{
		Use:   "attest <file>...",
		Short: "Generate signed attestation records",
		Long: `Generate an attestation record for each file: a timestamped assertion
that a specific digest was computed for it.

Records are signed with the configured backend (Ed25519 by default, OpenPGP
via attestation.backend: pgp) and appended to the output file as JSON lines.
Attestation files are append-only; a changed file gets a new record, never
an edit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if noSign {
				cfg.Attestation.Sign = false
			}
			if outFile == "" {
				outFile = cfg.Attestation.Output
			}

			engine, err := cfg.DigestEngine()
			if err != nil {
				return err
			}

			algo := digest.SHA256
			if algorithm != "" {
				if algo, err = digest.ParseAlgorithm(algorithm); err != nil {
					return err
				}
			}

			meta, err := parseMetadata(metadata)
			if err != nil {
				return err
			}

			signer, err := newSigner(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := GetLogger().WithContext(cmd.Context())
			generator := attest.NewGenerator(engine, signer, nil)

			records := make([]attest.Record, 0, len(args))
			for _, path := range args {
				rec, genErr := generator.Generate(ctx, path, algo, meta)
				if genErr != nil {
					return genErr
				}
				records = append(records, rec)
			}

			zerolog.Ctx(ctx).Info().
				Int("records", len(records)).
				Bool("signed", signer != nil).
				Msg("attestation records generated")

			if outFile != "" {
				if err := attest.AppendRecords(outFile, records); err != nil {
					return err
				}
				tui.NewOutput(cmd.OutOrStdout(), flags.Output).
					Success(fmt.Sprintf("appended %d records to %s", len(records), outFile))
				return nil
			}

			switch format {
			case "yaml":
				data, marshalErr := yaml.Marshal(records)
				if marshalErr != nil {
					return errors.Wrap(marshalErr, "encoding attestation records")
				}
				_, _ = cmd.OutOrStdout().Write(data)
				return nil
			case "json":
				return tui.NewJSONOutput(cmd.OutOrStdout()).JSON(records)
			default:
				return errors.Wrapf(errors.ErrInvalidOutputFormat, "format %q (valid: json, yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "digest algorithm (sha256|sha3-256|blake3)")
	cmd.Flags().StringVar(&outFile, "output-file", "", "attestation file to append records to")
	cmd.Flags().StringVar(&format, "format", "json", "stdout record encoding (json|yaml)")
	cmd.Flags().StringArrayVarP(&metadata, "metadata", "m", nil, "metadata key=value pair (repeatable)")
	cmd.Flags().BoolVar(&noSign, "no-sign", false, "generate unsigned records")

	root.AddCommand(cmd)
}

// parseMetadata converts key=value flags into the record metadata map.
func parseMetadata(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Wrapf(errors.ErrEmptyValue, "metadata %q is not key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
