package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/taskpool/taskpool/config"
	"github.com/taskpool/taskpool/metrics"
	"github.com/taskpool/taskpool/pool"
)

func newRunCmd() *cobra.Command {
	var jobsFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a job file and run it through a worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgFile != "" {
				loaded, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if jobsFile != "" {
				cfg.JobsFile = jobsFile
			}

			return runPool(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&jobsFile, "jobs", "j", "", "path to a YAML jobs file (overrides config)")

	return cmd
}

// runPool boots a pool per cfg, submits every job from cfg.JobsFile,
// serves /metrics if enabled, and drains on SIGINT/SIGTERM — following
// ChuLiYu-raft-recovery's run command's startup/shutdown sequencing.
func runPool(cmd *cobra.Command, cfg config.Config) error {
	logger := slog.Default()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(prometheus.DefaultRegisterer, "taskpool")

		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.Handler()}
		go func() {
			logger.Info("metrics server starting", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		defer srv.Close()
	}

	opts := []pool.Option{pool.WithLogger(logger)}
	if collector != nil {
		opts = append(opts, pool.WithMetrics(collector))
	}

	p, err := pool.NewPool(cfg.Workers, opts...)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JobsFile != "" {
		if err := submitJobs(ctx, cmd, p, cfg.JobsFile); err != nil {
			p.Shutdown()

			return err
		}
	}

	// submitJobs has already waited for every job's outcome, or stopped
	// waiting because the user interrupted — either way Shutdown drains
	// whatever was already accepted.
	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received, draining pool")
	}()

	p.Shutdown()
	logger.Info("pool drained, exiting")

	return nil
}

func submitJobs(ctx context.Context, cmd *cobra.Command, p *pool.Pool, jobsFile string) error {
	jobs, err := config.LoadJobs(jobsFile)
	if err != nil {
		return err
	}

	futures := make([]*pool.Future[string], 0, len(jobs))
	for _, job := range jobs {
		job := job
		future, err := pool.Submit(ctx, p, func(ctx context.Context) (string, error) {
			if job.DelayMS > 0 {
				select {
				case <-time.After(time.Duration(job.DelayMS) * time.Millisecond):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
			if job.FailWith != "" {
				return "", fmt.Errorf("job %q: %s", job.Name, job.FailWith)
			}

			return job.Payload, nil
		})
		if err != nil {
			return fmt.Errorf("submit job %q: %w", job.Name, err)
		}
		futures = append(futures, future)
	}

	for i, future := range futures {
		value, err := future.Wait(ctx)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "job %q: error: %v\n", jobs[i].Name, err)

			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "job %q: %s\n", jobs[i].Name, value)
	}

	return nil
}
