package config

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgconfig "github.com/nilium/snowball/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new configuration file",
	Long: `Create a sample snowball configuration file.

By default the file is created at $XDG_CONFIG_HOME/snowball/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  snowball config init

  # Initialize with custom path
  snowball config init --config /etc/snowball/config.yaml

  # Overwrite an existing config
  snowball config init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")

	var (
		path string
		err  error
	)
	if configFile != "" {
		path, err = pkgconfig.InitConfigToPath(configFile, initForce)
	} else {
		path, err = pkgconfig.InitConfig(initForce)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
	return nil
}
