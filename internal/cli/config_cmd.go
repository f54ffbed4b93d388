package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/integrityforge/internal/config"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/tui"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigValidateCmd(flags))
	cmd.AddCommand(newConfigInitCmd(flags))

	root.AddCommand(cmd)
}

// newConfigShowCmd prints the effective configuration after layering.
func newConfigShowCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after all layers are merged:
flags > environment > project config > global config > defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			if flags.Output == OutputJSON {
				return tui.NewJSONOutput(cmd.OutOrStdout()).JSON(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "encoding configuration")
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}
}

// newConfigValidateCmd checks the configuration without running anything.
func newConfigValidateCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long:  `Load and validate the configuration. Exit code 3 on any schema violation.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)
			out.Success(fmt.Sprintf("configuration is valid (%d rules, algorithms: %v)",
				len(cfg.Rules), cfg.Algorithms))
			return nil
		},
	}
}

// newConfigInitCmd writes a default project config file.
func newConfigInitCmd(flags *GlobalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project configuration file",
		Long:  `Write the built-in defaults to .integrityforge/config.yaml as a starting point.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ProjectConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Wrapf(errors.ErrOperationFailed, "%s already exists (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(config.ProjectConfigDir(), 0o750); err != nil {
				return errors.Wrapf(errors.ErrIO, "creating %s: %v", config.ProjectConfigDir(), err)
			}

			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return errors.Wrap(err, "encoding default configuration")
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return errors.Wrapf(errors.ErrIO, "writing %s: %v", path, err)
			}

			tui.NewOutput(cmd.OutOrStdout(), flags.Output).Success("created " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
