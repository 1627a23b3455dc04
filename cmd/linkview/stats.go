package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/justkashish/linkview/internal/stats"
	"github.com/justkashish/linkview/internal/task"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStatsCmd(injector *do.Injector) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard click aggregates",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return requireSession(injector)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := do.MustInvoke[*stats.View](injector)
			logger := do.MustInvoke[*zap.Logger](injector)

			if !watch {
				view.Refresh(cmd.Context())
				renderStats(view)

				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			group := task.NewGroup(logger)
			group.Add(task.NewTicker(stats.PollInterval, func(ctx context.Context) {
				view.Refresh(ctx)
				renderStats(view)
			}, logger))

			if err := group.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()

			return group.Shutdown()
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing until interrupted")

	return cmd
}

func renderStats(view *stats.View) {
	data := view.Stats()

	fmt.Printf("Total Clicks: %d\n\n", data.TotalClicks)

	fmt.Println("Date-wise Clicks")
	for _, row := range data.DateWise {
		fmt.Printf("  %-12s %s %d\n", row.Date, bar(row.Clicks), row.Clicks)
	}

	fmt.Println()
	fmt.Println("Click Devices")
	for _, row := range data.DeviceWise {
		fmt.Printf("  %-12s %s %d\n", row.Device, bar(row.Clicks), row.Clicks)
	}
}

func bar(n int) string {
	if n > 40 {
		n = 40
	}

	return strings.Repeat("#", n)
}
