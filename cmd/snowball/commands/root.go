// Package commands implements the snowball CLI's command tree.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nilium/snowball/cmd/snowball/commands/catalog"
	"github.com/nilium/snowball/cmd/snowball/commands/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	cfgFile string
)

// rootCmd is the base command invoked when snowball is run with no
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "snowball",
	Short: "Inspect, catalog, and serve .snowball binary archives",
	Long: `snowball is a CLI around the Snowball binary serialization codec:
it dumps the structure of a .snowball file, manages a catalog of archives
across local or S3 blob storage, and exposes an HTTP server for long-running
deployments.

Use "snowball [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/snowball/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(catalog.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path from the --config persistent
// flag.
func GetConfigFile() string {
	return cfgFile
}

// PrintErr prints a formatted error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error message and exits with status 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
