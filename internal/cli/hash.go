package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/tui"
)

// hashResult is the JSON shape of one hashed file.
type hashResult struct {
	Path      string           `json:"path"`
	Algorithm digest.Algorithm `json:"algorithm"`
	Digest    string           `json:"digest"`
	Size      int64            `json:"size"`
}

// AddHashCommand adds the hash command to the root command.
func AddHashCommand(root *cobra.Command, flags *GlobalFlags) {
	var (
		algorithm string
		chunkSize int
		outFile   string
	)

	cmd := &cobra.Command{
		Use:   "hash <file>...",
		Short: "Compute file digests",
		Long: `Compute streaming digests for one or more files.

Output lines use the manifest format (digest, two spaces, path), so the
result can be fed back to 'integrityforge validate'. Use --output to write
a manifest file directly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if chunkSize > 0 {
				cfg.ChunkSize = chunkSize
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

			ctx := GetLogger().WithContext(cmd.Context())
			log := zerolog.Ctx(ctx)

			results := make([]hashResult, 0, len(args))
			for _, path := range args {
				d, computeErr := engine.ComputeFile(ctx, path, algo)
				if computeErr != nil {
					return computeErr
				}
				results = append(results, hashResult{
					Path:      path,
					Algorithm: d.Algorithm,
					Digest:    d.Hex,
					Size:      d.Bytes,
				})
			}

			log.Info().Int("files", len(results)).Str("algorithm", string(algo)).Msg("hashing complete")

			if outFile != "" {
				if err := writeManifestFile(outFile, algo, results); err != nil {
					return err
				}
				tui.NewOutput(cmd.OutOrStdout(), flags.Output).
					Success(fmt.Sprintf("wrote %d entries to %s", len(results), outFile))
				return nil
			}

			if flags.Output == OutputJSON {
				return tui.NewJSONOutput(cmd.OutOrStdout()).JSON(results)
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", r.Digest, r.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "digest algorithm (sha256|sha3-256|blake3)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "streaming read size in bytes")
	cmd.Flags().StringVar(&outFile, "output-file", "", "write a manifest file instead of printing")

	root.AddCommand(cmd)
}

// writeManifestFile writes hash results as a manifest. A non-default
// algorithm is recorded with an algorithm directive so validate can resolve
// it later.
func writeManifestFile(path string, algo digest.Algorithm, results []hashResult) error {
	var b strings.Builder
	if algo != digest.SHA256 {
		fmt.Fprintf(&b, "# algorithm: %s\n", algo)
	}
	for _, r := range results {
		fmt.Fprintf(&b, "%s  %s\n", r.Digest, r.Path)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return errors.Wrapf(errors.ErrIO, "writing manifest %s: %v", path, err)
	}
	return nil
}
