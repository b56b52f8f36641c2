package main

import (
	"fmt"
	"strings"

	"github.com/clubdemo/club-demographics/internal/config"
	"github.com/clubdemo/club-demographics/internal/server"
	"github.com/clubdemo/club-demographics/internal/wire"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "encode ROSTER.csv",
		Short: "Print an anonymized population pyramid URL for a roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := config.NewInputParser().LoadRoster(args[0])
			if err != nil {
				return err
			}
			query, err := wire.EncodeRows(people)
			if err != nil {
				return err
			}
			if baseURL == "" {
				fmt.Fprintln(cmd.OutOrStdout(), query)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s?%s\n", strings.TrimRight(baseURL, "/"), server.PyramidPath, query)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Prefix the query with this server URL, e.g. http://localhost:8080")
	return cmd
}
