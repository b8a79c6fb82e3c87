package main

import (
	"github.com/spf13/cobra"

	"cfront/internal/driver"
)

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Print the symbol dump stored in a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return driver.DumpSnapshot(args[0], cmd.OutOrStdout())
		},
	}
}
