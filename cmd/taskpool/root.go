// Command taskpool is a demonstration CLI for the pool package: it loads
// a YAML job list, runs the jobs through a pool.Pool, optionally serves
// Prometheus metrics, and drains on SIGINT/SIGTERM — the command
// structure and signal-handling flow are grounded on
// ChuLiYu-raft-recovery's internal/cli package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskpool",
		Short: "Run and inspect a fixed-size worker pool",
		Long: "taskpool demonstrates the executor implemented in the pool package: \n" +
			"a fixed-size set of workers draining an unbounded task queue, with \n" +
			"per-task futures, graceful drain-on-shutdown, and optional \n" +
			"Prometheus metrics.",
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskpool version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)

			return err
		},
	}
}

// version is set by -ldflags at build time in a real release pipeline;
// it defaults to "dev" for local builds.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
