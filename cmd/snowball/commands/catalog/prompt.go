package catalog

import (
	"fmt"

	"github.com/nilium/snowball/internal/cli/prompt"
	"github.com/nilium/snowball/pkg/catalog"
)

// disambiguate prompts the user to pick one of several ID-prefix matches.
func disambiguate(candidates []*catalog.Entry) (string, error) {
	options := make([]prompt.SelectOption, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, prompt.SelectOption{
			Label:       c.ID,
			Value:       c.ID,
			Description: fmt.Sprintf("location=%s size=%d compounds=%d", c.Location, c.Size, c.CompoundCount),
		})
	}

	return prompt.Select(fmt.Sprintf("Multiple entries match (%d candidates)", len(candidates)), options)
}
