package main

import (
	"fmt"

	"github.com/clubdemo/club-demographics/internal/sampling"
	"github.com/spf13/cobra"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available waitlist sampling strategies",
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range sampling.Available() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", d.ID, d.Label)
			}
		},
	}
}
