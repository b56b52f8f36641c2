package main

import (
	"github.com/clubdemo/club-demographics/internal/analysis"
	"github.com/clubdemo/club-demographics/internal/config"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/clubdemo/club-demographics/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newPyramidCmd() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "pyramid",
		Short: "Bucket the current membership by age and gender",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := in.load(cmd)
			if err != nil {
				return err
			}
			// the waitlist only contributes its size here
			if err := config.NewInputParser().ValidateInputs(cfg); err != nil {
				return err
			}
			members, waitlist, err := rosters(cfg)
			if err != nil {
				return err
			}
			ref, err := config.ReferenceTime(cfg)
			if err != nil {
				return err
			}

			engine := analysis.NewEngine()
			engine.SetLogger(logrus.StandardLogger())
			report, err := engine.Pyramid(analysis.PyramidRequest{
				Title:         cfg.Title,
				Members:       members,
				Waitlist:      waitlist,
				ReferenceDate: ref,
				Geometry:      cfg.Buckets,
			})
			if err != nil {
				return err
			}
			return writeReport(cmd, report, cfg.Output)
		},
	}
	in.register(cmd)
	return cmd
}

// writeReport sends report to the configured path, or to the command's stdout.
func writeReport(cmd *cobra.Command, report *domain.Report, out domain.OutputConfig) error {
	if out.Path != "" {
		if err := output.GenerateReportFile(report, out.Format, out.Path); err != nil {
			return err
		}
		logrus.Infof("report written to %s", out.Path)
		return nil
	}
	return output.GenerateReport(cmd.OutOrStdout(), report, out.Format)
}
