// Package catalog implements snowball's catalog inspection subcommands
// (list, get, delete), backed by whichever pkg/catalog backend the loaded
// configuration selects.
package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nilium/snowball/pkg/catalog"
	"github.com/nilium/snowball/pkg/catalog/badger"
	"github.com/nilium/snowball/pkg/catalog/memory"
	pkgconfig "github.com/nilium/snowball/pkg/config"
)

// Cmd is the catalog subcommand.
var Cmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the catalog of indexed .snowball files",
	Long: `Inspect the catalog of indexed .snowball files.

Subcommands:
  list    List all cataloged entries
  get     Show one entry by ID or ID prefix
  delete  Remove an entry by ID or ID prefix`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(deleteCmd)
}

// openStore opens the catalog.Store selected by the configuration loaded
// from the --config persistent flag.
func openStore(cmd *cobra.Command) (catalog.Store, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := pkgconfig.MustLoad(configPath)
	if err != nil {
		return nil, err
	}

	switch cfg.Catalog.Backend {
	case "badger":
		return badger.Open(cfg.Catalog.Badger.Path)
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend: %q", cfg.Catalog.Backend)
	}
}

// resolveID resolves a possibly-partial ID against store's entries. An
// exact match wins outright; otherwise every entry whose ID has id as a
// prefix is a candidate. Zero candidates is a not-found error, one
// candidate resolves silently, and more than one prompts the user to
// disambiguate interactively.
func resolveID(entries []*catalog.Entry, id string) (string, error) {
	for _, e := range entries {
		if e.ID == id {
			return id, nil
		}
	}

	var candidates []*catalog.Entry
	for _, e := range entries {
		if len(id) > 0 && hasPrefix(e.ID, id) {
			candidates = append(candidates, e)
		}
	}

	switch len(candidates) {
	case 0:
		return "", catalog.ErrNotFound
	case 1:
		return candidates[0].ID, nil
	default:
		return disambiguate(candidates)
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
