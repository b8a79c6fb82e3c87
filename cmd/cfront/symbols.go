package main

import (
	"github.com/spf13/cobra"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [files...]",
		Short: "Declare the units and dump the global symbol table",
		Long: `symbols declares every translation unit into one table and prints the
global, enum and typedef catalogs. Without files, the sources of cfront.toml are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveBuild(cmd, args, true)
			if err != nil {
				return err
			}
			return runBuild(cmd, opts)
		},
	}
	cmd.Flags().Bool("dump-symbols", true, "print the symbol dump")
	cmd.Flags().String("emit-snapshot", "", "write a msgpack snapshot of the table to this path")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report declaration errors without dumping",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveBuild(cmd, args, false)
			if err != nil {
				return err
			}
			return runBuild(cmd, opts)
		},
	}
	return cmd
}
