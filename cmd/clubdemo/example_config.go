package main

import (
	"github.com/clubdemo/club-demographics/internal/config"
	"github.com/clubdemo/club-demographics/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExampleConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Write an example configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if path == "" || path == "-" {
				b, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := output.SaveConfiguration(cfg, path); err != nil {
				return err
			}
			logrus.Infof("example configuration written to %s", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "Destination file (stdout when empty or -)")
	return cmd
}
