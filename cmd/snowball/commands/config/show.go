package config

import (
	"github.com/spf13/cobra"

	"github.com/nilium/snowball/internal/cli/output"
	pkgconfig "github.com/nilium/snowball/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the current snowball configuration.

By default outputs YAML. Use --output to change format.

Examples:
  # Show config as YAML
  snowball config show

  # Show config as JSON
  snowball config show --output json

  # Show a specific config file
  snowball config show --config /etc/snowball/config.yaml`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := pkgconfig.MustLoad(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(cmd.OutOrStdout(), cfg)
	default:
		return output.PrintYAML(cmd.OutOrStdout(), cfg)
	}
}
