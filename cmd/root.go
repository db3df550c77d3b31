// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/corelayout-sim/sim"
	"github.com/inference-sim/corelayout-sim/sim/workload"
)

var (
	configPath string
	seed       int64
	runID      int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "corelayout-sim",
	Short: "Tick-driven simulator of packet processing across server core layouts",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation against a config file",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadConfig(configPath)
		logrus.Infof("loaded config: layout=%d duration=%d nr_packets=%d", cfg.Layout, cfg.Duration, cfg.Packets.NrPackets)

		layout := buildLayout(cfg)
		rng := sim.NewPartitionedRNG(seed)

		logrus.Info("generating packet trace...")
		bar := newProgressBar(int64(cfg.Packets.NrPackets), "requests")
		packets, err := workload.Generate(cfg, rng)
		if err != nil {
			logrus.Fatalf("error generating trace: %v", err)
		}
		bar.Add64(int64(len(packets)))
		bar.Finish()

		metrics := sim.NewMetrics(cfg.NrTotalCores, cfg.RTTBase)
		simulation := sim.NewSimulator(cfg.Duration, cfg.Packets.NrPackets, packets, layout, metrics)

		logrus.Info("running simulation...")
		tickBar := newProgressBar(cfg.Duration, "ticks")
		simulation.Progress = func(ticks int64) { tickBar.Add64(ticks) }
		simulation.Run()
		tickBar.Finish()

		rawPath := fmt.Sprintf("layout%d_run%d.dat", cfg.Layout, runID)
		statsPath := fmt.Sprintf("layout%d_run%d.csv", cfg.Layout, runID)
		metrics.WriteRawLatencies(rawPath)
		metrics.WriteStatsCSV(statsPath, cfg.Packets.NrPackets)

		logrus.Infof("done: received=%d finished=%d dropped=%d forwarder_dropped_no_worker=%d",
			metrics.Received, len(metrics.Finished), len(metrics.Dropped), metrics.ForwarderDroppedNoWorker)
	},
}

// buildLayout constructs the Layout named by cfg.Layout. cfg.Validate has
// already confirmed the layout id and its core counts fit nr_total_cores.
func buildLayout(cfg *sim.Config) sim.Layout {
	switch cfg.Layout {
	case 1:
		return sim.NewLayout1(cfg.Layout1.NrWorkerCores, cfg.QueueSize, cfg.Packets.NrFlows)
	case 2:
		return sim.NewLayout2(cfg.Layout2.NrWorkerCores, cfg.QueueSize, cfg.NrIndirectionTableEntries)
	case 3:
		return sim.NewLayout3(cfg.Layout3.NrApplicationCores, cfg.QueueSize)
	case 4:
		return sim.NewLayout4(cfg.Layout4.NrNetworkCores, cfg.Layout4.NrApplicationCores, cfg.QueueSize, cfg.NrIndirectionTableEntries)
	default:
		logrus.Fatalf("unknown layout %d", cfg.Layout)
		return nil
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the run's YAML config")
	runCmd.Flags().Int64Var(&seed, "seed", 7, "Master RNG seed for the run")
	runCmd.Flags().IntVar(&runID, "run-id", 0, "Run identifier, used in output file names")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}
