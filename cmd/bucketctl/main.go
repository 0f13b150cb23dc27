package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/atomic"

	"github.com/spf13/cobra"

	"github.com/core-telecoms/bucketctl/internal/build"
	"github.com/core-telecoms/bucketctl/pkg/api/logger"
	"github.com/core-telecoms/bucketctl/pkg/api/logger/color"
	"github.com/core-telecoms/bucketctl/pkg/cmd/cmd_apply"
	"github.com/core-telecoms/bucketctl/pkg/cmd/cmd_init"
	"github.com/core-telecoms/bucketctl/pkg/cmd/cmd_plan"
	"github.com/core-telecoms/bucketctl/pkg/cmd/root_cmd"
)

func main() {
	rootParams := &root_cmd.Params{
		Verbose:    false,
		Silent:     false,
		IsCanceled: atomic.NewBool(false),
		CancelFunc: func() {},
	}

	rootCmdInstance := &root_cmd.RootCmd{
		Params: rootParams,
	}
	ctx, cancel := context.WithCancel(context.Background())

	rootParams.CancelFunc = cancel

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		rootParams.IsCanceled.Store(true)
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:     "bucketctl",
		Version: build.Version,
		Short:   "bucketctl keeps the complaints-ETL ingestion bucket in its desired state",
		Long:    "A declarative reconciler for the raw-layer ingestion bucket of the customer complaints data platform.\nComputes the minimal set of operations to converge the bucket and applies them on demand.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCmdInstance.Init(); err != nil {
				return err
			}
			if rootParams.Verbose {
				cmd.SetContext(rootCmdInstance.Logger.SetLogLevel(cmd.Context(), logger.LogLevelDebug))
			}
			if rootParams.Silent {
				cmd.SetContext(rootCmdInstance.Logger.SetLogLevel(cmd.Context(), logger.LogLevelError))
			}
			return nil
		},
	}
	rootCmd.SetContext(ctx)
	rootCmd.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")

	rootCmd.AddCommand(
		cmd_init.NewInitCmd(rootCmdInstance),
		cmd_plan.NewPlanCmd(rootCmdInstance),
		cmd_apply.NewApplyCmd(rootCmdInstance),
	)

	rootCmd.PersistentFlags().BoolVarP(&rootParams.Verbose, "verbose", "v", rootParams.Verbose, "Verbose mode")
	rootCmd.PersistentFlags().BoolVarP(&rootParams.Silent, "silent", "q", rootParams.Silent, "Only log errors")

	err := rootCmd.Execute()
	if err != nil {
		_, _ = os.Stderr.WriteString(color.RedFmt("Error executing command: %s\n", err.Error()))
		os.Exit(1)
	}
}
