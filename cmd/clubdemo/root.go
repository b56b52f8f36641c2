package main

import (
	"fmt"

	"github.com/clubdemo/club-demographics/internal/config"
	"github.com/clubdemo/club-demographics/internal/demographics"
	"github.com/clubdemo/club-demographics/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "clubdemo",
		Short:        "Population pyramids and waitlist projections for membership clubs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(
		newPyramidCmd(),
		newSimulateCmd(),
		newServeCmd(),
		newExampleConfigCmd(),
		newStrategiesCmd(),
		newEncodeCmd(),
	)
	return root
}

// inputFlags are shared by commands that read a configuration and rosters.
type inputFlags struct {
	configFile string
	members    string
	waitlist   string
	date       string
	title      string
	buckets    int
	width      int
	format     string
	output     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to YAML configuration file")
	cmd.Flags().StringVar(&f.members, "members", "", "Members roster CSV (name,date_of_birth,gender)")
	cmd.Flags().StringVar(&f.waitlist, "waitlist", "", "Waitlist roster CSV in descending priority order")
	cmd.Flags().StringVar(&f.date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&f.title, "title", "", "Report title")
	cmd.Flags().IntVar(&f.buckets, "buckets", domain.DefaultBucketCount, "Number of regular age buckets")
	cmd.Flags().IntVar(&f.width, "width", domain.DefaultBucketWidth, "Width of each age bucket in years")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (console, csv, batch-csv, json, html)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
}

// load reads the configuration file (if any) and applies explicitly set flags on top.
func (f *inputFlags) load(cmd *cobra.Command) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg := parser.DefaultConfiguration()
	if f.configFile != "" {
		loaded, err := parser.LoadFromFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("members") {
		cfg.MembersFile = f.members
	}
	if flags.Changed("waitlist") {
		cfg.WaitlistFile = f.waitlist
	}
	if flags.Changed("date") {
		cfg.ReferenceDate = f.date
	}
	if flags.Changed("title") {
		cfg.Title = f.title
	}
	if flags.Changed("buckets") {
		cfg.Buckets.Count = f.buckets
	}
	if flags.Changed("width") {
		cfg.Buckets.Width = f.width
	}
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("output") {
		cfg.Output.Path = f.output
	}
	return cfg, nil
}

// rosters loads the members and, when configured, the waitlist.
func rosters(cfg *domain.Configuration) (members, waitlist []domain.Person, err error) {
	parser := config.NewInputParser()
	members, err = parser.LoadRoster(cfg.MembersFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.WaitlistFile != "" {
		waitlist, err = parser.LoadRoster(cfg.WaitlistFile)
		if err != nil {
			return nil, nil, err
		}
	}
	logrus.WithFields(logrus.Fields{"members": len(members), "waitlist": len(waitlist)}).Debug("loaded rosters")
	return members, waitlist, nil
}

func validateGeometry(g domain.BucketGeometry) error {
	if err := demographics.ValidateGeometry(g); err != nil {
		return fmt.Errorf("buckets: %w", err)
	}
	return nil
}
