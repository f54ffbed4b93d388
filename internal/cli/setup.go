package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/integrityforge/internal/config"
	"github.com/mrz1836/integrityforge/internal/crypto"
	"github.com/mrz1836/integrityforge/internal/crypto/native"
	"github.com/mrz1836/integrityforge/internal/crypto/pgp"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// loadConfig loads the layered configuration for a command. An explicit
// --config path replaces the project-level file; env vars and global config
// still apply.
func loadConfig(cmd *cobra.Command, flags *GlobalFlags) (*config.Config, error) {
	ctx := cmd.Context()
	if flags.ConfigFile != "" {
		globalPath, _ := config.GlobalConfigPath()
		return config.LoadFromPaths(ctx, flags.ConfigFile, globalPath)
	}
	return config.Load(ctx)
}

// newSigner builds the signing backend selected by the configuration.
// Returns nil without error when signing is disabled.
func newSigner(cmd *cobra.Command, cfg *config.Config) (crypto.Signer, error) {
	if !cfg.Attestation.Sign {
		return nil, nil //nolint:nilnil // nil signer means unsigned records
	}

	switch cfg.Attestation.Backend {
	case config.BackendPGP:
		signer, err := pgp.LoadSigner(cfg.Attestation.Keyring)
		if err != nil {
			return nil, errors.Wrap(errors.ErrSignerUnavailable, err.Error())
		}
		return signer, nil

	default:
		keyDir := cfg.Attestation.KeyDir
		if keyDir == "" {
			var err error
			keyDir, err = config.GlobalKeysDir()
			if err != nil {
				return nil, err
			}
		}

		km := native.NewKeyManager(keyDir)
		if err := km.Load(cmd.Context()); err != nil {
			return nil, errors.Wrap(errors.ErrSignerUnavailable, err.Error())
		}
		return km.NewSigner()
	}
}

// newVerifier builds the verification backend selected by the configuration.
// Verification never generates keys: a missing key means unsigned-only
// verification, reported as nil.
func newVerifier(cmd *cobra.Command, cfg *config.Config) (crypto.Verifier, error) {
	switch cfg.Attestation.Backend {
	case config.BackendPGP:
		if cfg.Attestation.Keyring == "" {
			return nil, nil //nolint:nilnil // nil verifier means unsigned-only verification
		}
		signer, err := pgp.LoadSigner(cfg.Attestation.Keyring)
		if err != nil {
			return nil, errors.Wrap(errors.ErrSignerUnavailable, err.Error())
		}
		return signer, nil

	default:
		keyDir := cfg.Attestation.KeyDir
		if keyDir == "" {
			var err error
			keyDir, err = config.GlobalKeysDir()
			if err != nil {
				return nil, err
			}
		}

		km := native.NewKeyManager(keyDir)
		if !km.Exists() {
			return nil, nil //nolint:nilnil // nil verifier means unsigned-only verification
		}
		if err := km.Load(cmd.Context()); err != nil {
			return nil, errors.Wrap(errors.ErrSignerUnavailable, err.Error())
		}
		return km.NewSigner()
	}
}
