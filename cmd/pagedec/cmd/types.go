package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opencgm/pagedec/pkg/records"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the known record types",
	Long: `List every record type pagedec can decode, with the on-disk
size of one record of that type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tSIZE")
		for _, t := range records.Types() {
			fmt.Fprintf(w, "%s\t%d\n", t, t.Size())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
