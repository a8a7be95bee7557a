package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petasbytes/taskrunner/memory"
)

func newHistoryCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "history PATH",
		Short: "Print a history file written by run --save-history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := memory.LoadHistory(args[0])
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if entries == nil {
				return fmt.Errorf("no history at %s", args[0])
			}
			out := newRenderer(cmd.OutOrStdout(), plain)
			out.heading("Task History")
			out.history(entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown even on a terminal")
	return cmd
}
