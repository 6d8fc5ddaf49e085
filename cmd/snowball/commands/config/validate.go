package config

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgconfig "github.com/nilium/snowball/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate the snowball configuration without starting anything.

Examples:
  # Validate the default config file
  snowball config validate

  # Validate a specific file
  snowball config validate --config /etc/snowball/config.yaml`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := pkgconfig.MustLoad(configPath)
	if err != nil {
		return err
	}

	if err := pkgconfig.Validate(cfg); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
	return nil
}
