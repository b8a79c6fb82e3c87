package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cfront/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show cfront build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "pretty":
				colorStr, _ := cmd.Flags().GetString("color")
				mode, err := readColorMode(colorStr)
				if err != nil {
					return err
				}
				out, _ := cmd.OutOrStdout().(*os.File)
				color.NoColor = !(mode == colorOn || (out != nil && useColor(mode, out)))
				fmt.Fprintln(cmd.OutOrStdout(), version.Banner())
				return nil
			case "json":
				data, err := version.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
}
