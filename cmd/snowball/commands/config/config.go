// Package config implements snowball's configuration management
// subcommands (init, show, validate).
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the config subcommand.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage snowball configuration files.

Subcommands:
  init      Create a new configuration file
  show      Display current configuration
  validate  Validate a configuration file`,
}

func init() {
	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(validateCmd)
}
