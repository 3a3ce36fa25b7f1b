package main

import (
	"fmt"

	"github.com/ZaguanLabs/menuval"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", menuval.Name, menuval.Version)
			if menuval.GitCommit != "unknown" && menuval.GitCommit != "" {
				fmt.Fprintf(a.stdout, "  commit:  %s\n", menuval.GitCommit)
			}
			if menuval.BuildDate != "unknown" && menuval.BuildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", menuval.BuildDate)
			}
		},
	}
}
