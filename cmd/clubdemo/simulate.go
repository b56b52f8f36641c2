package main

import (
	"fmt"

	"github.com/clubdemo/club-demographics/internal/analysis"
	"github.com/clubdemo/club-demographics/internal/config"
	stats "github.com/clubdemo/club-demographics/pkg/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	var (
		in         inputFlags
		length     int
		strategy   string
		sampleRate int
		exitRate   string
		seed       int64
		runs       int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project membership forward as people are admitted from the waitlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := in.load(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("length") {
				cfg.Simulation.Length = length
			}
			if flags.Changed("strategy") {
				cfg.Simulation.Strategy = strategy
			}
			if flags.Changed("sample-rate") {
				cfg.Simulation.SampleRate = sampleRate
			}
			if flags.Changed("exit-rate") {
				rate, err := stats.NewRateFromString(exitRate)
				if err != nil {
					return fmt.Errorf("invalid exit rate %q: %w", exitRate, err)
				}
				cfg.Simulation.ExitRate = rate.Decimal
			}
			if flags.Changed("seed") {
				cfg.Simulation.Seed = seed
			}
			if flags.Changed("runs") {
				cfg.Simulation.Runs = runs
			}

			if cfg.WaitlistFile == "" {
				return fmt.Errorf("a waitlist roster is required (--waitlist or waitlist_file)")
			}
			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
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
			report, err := engine.Project(cmd.Context(), analysis.ProjectionRequest{
				PyramidRequest: analysis.PyramidRequest{
					Title:         cfg.Title,
					Members:       members,
					Waitlist:      waitlist,
					ReferenceDate: ref,
					Geometry:      cfg.Buckets,
				},
				Config: cfg.Simulation,
			})
			if err != nil {
				return err
			}
			logrus.Infof("simulated %d years with seed %d", cfg.Simulation.Length, report.Settings.Seed)
			return writeReport(cmd, report, cfg.Output)
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&length, "length", 10, "Number of years to simulate (1-50)")
	cmd.Flags().StringVar(&strategy, "strategy", "in-order", "Sampling strategy (see 'clubdemo strategies')")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 25, "Maximum admissions from the waitlist per year")
	cmd.Flags().StringVar(&exitRate, "exit-rate", "0.015", "Probability that a member leaves in a given year")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 derives one from the clock)")
	cmd.Flags().IntVar(&runs, "runs", 1, "Number of runs summarized as per-year percentiles")
	return cmd
}
