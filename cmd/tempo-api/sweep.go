package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/tempo/internal/service"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire stale pending suggestions once",
	Long:  `Run the suggestion expiry sweep a single time, for use from an external scheduler.`,
	RunE:  runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sweeper := service.NewSweeper(a.repos.Suggestions, a.scheduleService(), a.cfg.Engine.SweepConcurrency)
	result, err := sweeper.Sweep(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "users=%d expired=%d failed=%d\n", result.Users, result.Expired, result.Failed)
	return err
}
