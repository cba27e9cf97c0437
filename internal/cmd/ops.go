package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revad-ml/revad/internal/active"
)

// newOpsCommand constructs the `ops` subcommand listing the registered
// operation shapes.
func newOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List registered operations",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "unary:")
			for _, name := range active.UnaryNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "binary:")
			for _, name := range active.BinaryNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
		},
	}
}
