package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlorenzen/decklog/pkg/layout"
)

// newAlgorithmsCmd lists the selectable layout algorithms.
func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available layout algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range layout.Algorithms() {
				fmt.Println(StyleValue.Render(fmt.Sprintf("%-10s", a.Name)) + StyleDim.Render(a.Description))
			}
			return nil
		},
	}
}
