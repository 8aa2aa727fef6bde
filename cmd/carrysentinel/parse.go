package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"CarrySentinel/internal/rates"
)

// parseCmd prints the rates recognized in a pasted table
var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a central-bank rate table and print the recognized rates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		text, err := rateText(path)
		if err != nil {
			return err
		}
		rs, err := rates.Parse(text)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CURRENCY\tRATE")
		for _, c := range rs.Sorted() {
			fmt.Fprintf(tw, "%s\t%.2f%%\n", c, rs[c])
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
