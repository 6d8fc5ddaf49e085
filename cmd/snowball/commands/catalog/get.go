package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nilium/snowball/internal/cli/output"
)

var getOutput string

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one catalog entry by ID or ID prefix",
	Long: `Show one catalog entry. id may be a full entry ID or an unambiguous
prefix of one; if the prefix matches more than one entry, you are prompted
to pick which one.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runGet(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	id, err := resolveID(entries, args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", args[0], err)
	}

	entry, err := store.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get entry %q: %w", id, err)
	}

	format, err := output.ParseFormat(getOutput)
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		return output.PrintJSON(cmd.OutOrStdout(), entry)
	}
	return output.PrintYAML(cmd.OutOrStdout(), entry)
}
