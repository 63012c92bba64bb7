package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/internal/version"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.stdout, version.String())
		},
	}
}
