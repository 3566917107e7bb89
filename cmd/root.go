package cmd

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/clinic-sim/sim/clinic"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

var (
	// CLI flags for the clinic
	avgInterArrival float64 // Mean minutes between patient arrivals
	avgServiceTime  float64 // Mean minutes of service per patient
	capacity        int     // Number of servers (doctors)
	horizon         float64 // Opening time in minutes
	hours           float64 // Opening time in hours; overrides --horizon when set
	seed            int64   // Seed for the variate stream; random when not set
	monitorInterval float64 // Queue sampling period in minutes
	firstAtOpen     bool    // First patient arrives at opening
	traceLevel      string  // Event log recording level

	// CLI flags for input and output
	configPath   string // Scenario YAML file
	scenarioName string // Scenario to run from the file
	logTail      int    // Trailing event-log entries to print
	noColor      bool   // Disable coloured output
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "clinic-sim",
	Short: "Discrete-event simulator for clinic patient queues",
}

// runCmd executes one simulation using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one clinic simulation and print a report",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg := clinic.Config{
			AvgInterArrival:    avgInterArrival,
			AvgServiceTime:     avgServiceTime,
			Capacity:           capacity,
			Horizon:            horizon,
			FirstArrivalAtOpen: firstAtOpen,
			MonitorInterval:    monitorInterval,
			TraceLevel:         trace.TraceLevel(traceLevel),
		}
		if configPath != "" {
			f, err := loadScenarioFile(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenarios: %v", err)
			}
			sc, err := f.Find(scenarioName)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Loaded scenario %q from %s", sc.Name, configPath)
			cfg = applyFlagOverrides(cmd, sc.ClinicConfig())
		}
		if cmd.Flags().Changed("hours") {
			cfg.Horizon = hours * 60
		}
		// The file seed is kept unless --seed was given explicitly
		if cmd.Flags().Changed("seed") {
			s := seed
			cfg.Seed = &s
		}

		startTime := time.Now()
		result, err := clinic.RunSimulation(cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation took %v", time.Since(startTime))

		printReport(os.Stdout, result, reportOptions{
			LogTail: logTail,
			Color:   !noColor && !color.NoColor,
		})
	},
}

// applyFlagOverrides lets explicitly set flags win over scenario file values.
// Defaults never overwrite the file.
func applyFlagOverrides(cmd *cobra.Command, cfg clinic.Config) clinic.Config {
	flags := cmd.Flags()
	if flags.Changed("inter-arrival") {
		cfg.AvgInterArrival = avgInterArrival
	}
	if flags.Changed("service-time") {
		cfg.AvgServiceTime = avgServiceTime
	}
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("monitor-interval") {
		cfg.MonitorInterval = monitorInterval
	}
	if flags.Changed("first-at-open") {
		cfg.FirstArrivalAtOpen = firstAtOpen
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = trace.TraceLevel(traceLevel)
	}
	return cfg
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Clinic parameters
	runCmd.Flags().Float64Var(&avgInterArrival, "inter-arrival", 15, "Mean minutes between patient arrivals")
	runCmd.Flags().Float64Var(&avgServiceTime, "service-time", 20, "Mean minutes of service per patient")
	runCmd.Flags().IntVar(&capacity, "capacity", 2, "Number of servers")
	runCmd.Flags().Float64Var(&horizon, "horizon", 480, "Opening time in minutes; no arrivals at or after it")
	runCmd.Flags().Float64Var(&hours, "hours", 8, "Opening time in hours (overrides --horizon)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the variate stream (random unless given)")
	runCmd.Flags().Float64Var(&monitorInterval, "monitor-interval", clinic.DefaultMonitorInterval, "Queue sampling period in minutes")
	runCmd.Flags().BoolVar(&firstAtOpen, "first-at-open", false, "First patient arrives at opening instead of after one inter-arrival gap")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelEvents), "Event log level (none, events)")

	// Input and output
	runCmd.Flags().StringVar(&configPath, "config", "", "Scenario YAML file; explicitly set flags override its values")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario to run from --config (default: the first)")
	runCmd.Flags().IntVar(&logTail, "log-tail", 20, "Number of trailing event-log entries to print (0 hides the log)")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	// Attach `run` and `sweep` as subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
