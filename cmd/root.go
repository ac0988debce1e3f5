package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/galmock/galmock/hod"
)

var (
	// CLI flags
	configPath  string // Path to the yaml parameter file
	logLevel    string // Log verbosity level
	seed        uint64 // Seed for attaching random draws to catalogs that lack them
	workers     int    // Worker partitions per population pass
	outputDir   string // Where to place the galaxy tables
	writeToDisk bool   // Serialize the populated catalogs
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "galmock",
	Short: "HOD-based mock galaxy catalog generator for N-body halo catalogs",
}

// runCmd populates the configured halo and particle catalogs with galaxies
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the HOD population pass",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to read HOD config: %v", err)
		}

		params, err := cfg.HODParams.Params()
		if err != nil {
			logrus.Fatalf("invalid HOD parameters: %v", err)
		}
		run := cfg.RunConfig()
		run.Workers = workers

		halos, err := ReadHaloCSV(cfg.SimParams.HaloFile)
		if err != nil {
			logrus.Fatalf("unable to read halo catalog: %v", err)
		}
		parts, err := ReadParticleCSV(cfg.SimParams.ParticleFile)
		if err != nil {
			logrus.Fatalf("unable to read particle catalog: %v", err)
		}

		// Catalogs from preprocessed subsamples carry their own draws; these
		// are no-ops then.
		halos.AttachRandoms(seed)
		halos.AttachVelocityDeviates(seed, nil)
		parts.AttachRandoms(seed)

		logrus.Infof("populating %d halos and %d particles (LRG=%v ELG=%v QSO=%v, rsd=%v)",
			halos.Len(), parts.Len(), run.WantLRG, run.WantELG, run.WantQSO, run.RSD)

		startTime := time.Now()
		mock, err := hod.PopulateGalaxies(halos, parts, params, run)
		if err != nil {
			logrus.Fatalf("population pass failed: %v", err)
		}
		logrus.Infof("population pass finished in %v: %d centrals, %d satellites",
			time.Since(startTime), mock.Centrals.Total(), mock.Satellites.Total())

		if writeToDisk || cfg.HODParams.WriteToDisk {
			outDir, err := mock.WriteFiles(outputDir, params, run)
			if err != nil {
				logrus.Fatalf("writing galaxy tables: %v", err)
			}
			logrus.Infof("galaxy tables written to %s", outDir)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "./galmock.yaml", "Path to the yaml parameter file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Uint64Var(&seed, "seed", 600, "Seed used when catalogs carry no random draws")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Worker partitions per pass (0 = number of CPUs)")
	runCmd.Flags().StringVar(&outputDir, "output", ".", "Directory for the galaxy tables")
	runCmd.Flags().BoolVar(&writeToDisk, "write-to-disk", false, "Serialize the populated catalogs")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
