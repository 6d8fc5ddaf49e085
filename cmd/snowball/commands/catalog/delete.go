package catalog

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a catalog entry by ID or ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if err := store.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete entry %q: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}
