// ============================================================================
// Cellpool CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra-based entry point for running, benchmarking, and
// inspecting a cellpool worker pool from the command line.
//
// Command Structure:
//   cellpoolctl                    # Root command
//   ├── run                        # Start a pool and keep it alive
//   │   └── --config, -c          # Specify config file
//   ├── bench                      # Submit a burst of jobs and report throughput
//   │   └── --jobs, --workers, --policy
//   └── status                     # Show config and host resource usage
//
// Configuration Management:
//   Uses YAML config file (default: configs/default.yaml):
//   - pool: worker count and panic policy
//   - metrics: Prometheus HTTP exporter settings
//
// run Command:
//   1. Load config file
//   2. Start the Prometheus metrics HTTP server (if enabled)
//   3. Construct the pool with the configured size/policy
//   4. Feed a small demo workload on a ticker
//   5. Listen for SIGINT/SIGTERM and Close the pool gracefully
//
// ============================================================================

package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cellpool/cellpool/internal/metrics"
	"github.com/cellpool/cellpool/internal/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var log = slog.Default()

// Config represents the complete CLI configuration structure, loaded via
// YAML tags the same way the teacher's cmd/demo config does.
type Config struct {
	Pool struct {
		WorkerCount int    `yaml:"worker_count"`
		Policy      string `yaml:"policy"` // "kill" or "respawn"
	} `yaml:"pool"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

var configFile string

// BuildCLI assembles the root cobra command and its subcommands.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellpoolctl",
		Short: "cellpool: a panic-isolating fixed-size worker pool",
		Long: `cellpoolctl drives a cellpool worker pool:
- Fixed-size worker goroutines with a single coordinator
- Kill or Respawn panic policy
- Prometheus metrics`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildBenchCommand())
	rootCmd.AddCommand(buildStatusCommand())

	return rootCmd
}

func parsePolicy(s string) (pool.PanicPolicy, error) {
	switch s {
	case "kill", "":
		return pool.Kill, nil
	case "respawn":
		return pool.Respawn, nil
	default:
		return pool.Kill, fmt.Errorf("unknown panic policy %q (want \"kill\" or \"respawn\")", s)
	}
}

func buildRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a cellpool and feed it a demo workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPool()
		},
	}
	return cmd
}

func runPool() error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	policy, err := parsePolicy(cfg.Pool.Policy)
	if err != nil {
		return err
	}

	log.Info("starting cellpool", "workers", cfg.Pool.WorkerCount, "policy", policy.String())

	opts := []pool.Option{}
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		rec := metrics.NewRecorder(reg)
		opts = append(opts, pool.WithMetrics(rec))

		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("starting metrics server", "addr", addr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("metrics server error", "err", err)
			}
		}()
	}

	p, err := pool.New(cfg.Pool.WorkerCount, policy, opts...)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}

	var processed atomic.Int64
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	stopFeed := make(chan struct{})
	go func() {
		for {
			select {
			case <-stopFeed:
				return
			case <-ticker.C:
				p.Submit(func() {
					processed.Add(1)
				})
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	close(stopFeed)

	log.Info("received shutdown signal, closing pool")
	if err := p.Close(); err != nil {
		return err
	}

	log.Info("pool closed", "jobs_processed", processed.Load())
	return nil
}

func buildBenchCommand() *cobra.Command {
	var jobCount, workerCount int
	var policyFlag string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Submit a burst of jobs against an ephemeral pool and report throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(jobCount, workerCount, policyFlag)
		},
	}

	cmd.Flags().IntVar(&jobCount, "jobs", 10000, "number of jobs to submit")
	cmd.Flags().IntVar(&workerCount, "workers", 8, "number of workers")
	cmd.Flags().StringVar(&policyFlag, "policy", "kill", "panic policy: kill or respawn")

	return cmd
}

func runBench(jobCount, workerCount int, policyFlag string) error {
	policy, err := parsePolicy(policyFlag)
	if err != nil {
		return err
	}

	p, err := pool.New(workerCount, policy)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}

	var counter atomic.Int64
	start := time.Now()
	for i := 0; i < jobCount; i++ {
		p.Submit(func() {
			counter.Add(1)
		})
	}
	if err := p.Close(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("submitted %d jobs across %d workers (%s policy)\n", jobCount, workerCount, policy)
	fmt.Printf("completed %d jobs in %s (%.0f jobs/sec)\n", counter.Load(), elapsed, float64(jobCount)/elapsed.Seconds())
	return nil
}

func buildStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and host resource usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus()
		},
	}
	return cmd
}

func showStatus() error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("cellpool status")
	fmt.Println("----------------")
	fmt.Printf("config file:   %s\n", configFile)
	fmt.Printf("worker count:  %d\n", cfg.Pool.WorkerCount)
	fmt.Printf("panic policy:  %s\n", cfg.Pool.Policy)
	if cfg.Metrics.Enabled {
		fmt.Printf("metrics:       enabled on :%d/metrics\n", cfg.Metrics.Port)
	} else {
		fmt.Println("metrics:       disabled")
	}
	fmt.Println()

	if hostInfo, err := host.Info(); err == nil {
		fmt.Printf("host:          %s (%s)\n", hostInfo.Hostname, hostInfo.Platform)
	}
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		fmt.Printf("cpu:           %s (%d cores)\n", cpuInfo[0].ModelName, cpuInfo[0].Cores)
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		fmt.Printf("memory:        %.1f%% used\n", memInfo.UsedPercent)
	}

	return nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Pool.WorkerCount <= 0 {
		cfg.Pool.WorkerCount = 4
	}
	if cfg.Pool.Policy == "" {
		cfg.Pool.Policy = "kill"
	}

	return &cfg, nil
}
