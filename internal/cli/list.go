package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ouroboros-ml/ouroboros/internal/envconfig"
	"github.com/ouroboros-ml/ouroboros/internal/funcs"
)

// FuncsHandler lists the function catalog.
func FuncsHandler(cmd *cobra.Command, _ []string) error {
	var data [][]string
	for _, e := range funcs.All() {
		data = append(data, []string{e.Name, e.Formula, fmt.Sprint(e.Example), e.Description})
	}

	table := newTable(cmd.OutOrStdout(), []string{"NAME", "FORMULA", "EXAMPLE", "DESCRIPTION"})
	table.AppendBulk(data)
	table.Render()
	return nil
}

// EnvHandler lists the configuration variables and their current values.
func EnvHandler(cmd *cobra.Command, _ []string) error {
	vars := envconfig.AsMap()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var data [][]string
	for _, k := range keys {
		v := vars[k]
		data = append(data, []string{v.Name, fmt.Sprint(v.Value), v.Description})
	}

	table := newTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"})
	table.AppendBulk(data)
	table.Render()
	return nil
}
