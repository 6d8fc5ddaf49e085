package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nilium/snowball/internal/cli/output"
	"github.com/nilium/snowball/pkg/catalog"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cataloged entries",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	format, err := output.ParseFormat(listOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(cmd.OutOrStdout(), entries)
	case output.FormatYAML:
		return output.PrintYAML(cmd.OutOrStdout(), entries)
	default:
		return output.PrintTable(cmd.OutOrStdout(), entryTable(entries))
	}
}

type entryTable []*catalog.Entry

func (t entryTable) Headers() []string {
	return []string{"ID", "LOCATION", "SIZE", "COMPOUNDS", "CREATED"}
}

func (t entryTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		rows = append(rows, []string{
			e.ID,
			e.Location,
			fmt.Sprintf("%d", e.Size),
			fmt.Sprintf("%d", e.CompoundCount),
			e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return rows
}
