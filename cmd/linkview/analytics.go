package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/justkashish/linkview/internal/analytics"
	"github.com/justkashish/linkview/internal/config"
	"github.com/justkashish/linkview/internal/search"
	"github.com/justkashish/linkview/internal/task"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAnalyticsCmd(injector *do.Injector) *cobra.Command {
	var (
		page       int
		order      string
		searchTerm string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show the click analytics table",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return requireSession(injector)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := do.MustInvoke[*config.Config](injector)
			view := do.MustInvoke[*analytics.View](injector)
			query := do.MustInvoke[*search.Query](injector)
			logger := do.MustInvoke[*zap.Logger](injector)

			query.Set(searchTerm)

			if order == string(analytics.OrderAsc) {
				view.ToggleSort(cmd.Context())
			}

			view.SetPage(cmd.Context(), page)

			if !watch {
				renderAnalytics(view)

				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			unbind := view.BindSearch(ctx, query)
			defer unbind()

			group := task.NewGroup(logger)
			group.Add(task.NewTicker(cfg.PollInterval, func(ctx context.Context) {
				view.Fetch(ctx)
				renderAnalytics(view)
			}, logger))

			if err := group.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()

			return group.Shutdown()
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&order, "order", "desc", "timestamp order: asc or desc")
	cmd.Flags().StringVar(&searchTerm, "search", "", "filter by remark")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing until interrupted")

	return cmd
}

func renderAnalytics(view *analytics.View) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tORIGINAL\tSHORT\tIP\tDEVICE")

	rows := view.Rows()
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.CreatedAt.Local().Format("02 Jan 2006 15:04"),
			truncate(row.OriginalURL, 50),
			truncate(row.ShortURL, 30),
			row.IPAddress,
			row.UserDevice,
		)
	}

	w.Flush()

	if len(rows) == 0 {
		fmt.Println("No data available")
	}

	fmt.Printf("page %d of %d (%d events)\n", view.CurrentPage(), view.PageCount(), view.TotalCount())
}
