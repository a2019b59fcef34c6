package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fornellas/slogxt/log"
)

func Exit(code int) {
	os.Exit(code)
}

func ExitError(ctx context.Context, err error) {
	logger := log.MustLogger(ctx)
	logger.Error("Failed", "err", err)
	Exit(1)
}

// GetRunFn adapts an error-returning command body into a cobra Run
// function that logs the error and exits nonzero.
func GetRunFn(runE func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := runE(cmd, args); err != nil {
			ExitError(cmd.Context(), err)
		}
	}
}
