package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/colorblend/internal/blend"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List blend modes and compositing operators",
	RunE:  runModes,
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func runModes(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tFAMILY")
	for _, m := range blend.Modes() {
		fmt.Fprintf(tw, "%s\t%s\n", m, m.Family())
	}
	return tw.Flush()
}
