package main

import (
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr    string
		buckets int
		width   int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the population pyramid and simulation endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			geom := domain.BucketGeometry{Count: buckets, Width: width}
			if err := validateGeometry(geom); err != nil {
				return err
			}
			s := server.New(logrus.StandardLogger())
			s.Geometry = geom
			return s.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().IntVar(&buckets, "buckets", domain.DefaultBucketCount, "Default number of regular age buckets")
	cmd.Flags().IntVar(&width, "width", domain.DefaultBucketWidth, "Default width of each age bucket in years")
	return cmd
}
