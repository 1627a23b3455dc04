package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/justkashish/linkview/internal/api"
	"github.com/justkashish/linkview/internal/links"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newLinksCmd(injector *do.Injector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Manage your shortened links",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return requireSession(injector)
		},
	}

	cmd.AddCommand(
		newLinksListCmd(injector),
		newLinksCreateCmd(injector),
		newLinksEditCmd(injector),
		newLinksDeleteCmd(injector),
	)

	return cmd
}

func newLinksListCmd(injector *do.Injector) *cobra.Command {
	var (
		sortKey string
		desc    bool
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List links as a paged table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := do.MustInvoke[*links.Store](injector)
			store.LoadAll(cmd.Context())

			if sortKey != "" || desc {
				key := links.SortByCreated
				if sortKey == "status" {
					key = links.SortByStatus
				}

				store.Sort(key, !desc)
			}

			store.SetPage(page)
			renderLinks(store)

			return nil
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "sort column: created or status")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newLinksCreateCmd(injector *do.Injector) *cobra.Command {
	var (
		url     string
		remark  string
		expires string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new shortened link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := do.MustInvoke[*links.Store](injector)
			client := do.MustInvoke[*api.Client](injector)
			sink := linkNotifier(injector)

			form := links.NewCreateForm(client, sink, store.UpsertFromServer)
			form.Open()
			form.SetDestination(url)
			form.SetRemarks(remark)

			if expires != "" {
				date, err := time.Parse("2006-01-02", expires)
				if err != nil {
					return fmt.Errorf("invalid --expires date: %w", err)
				}

				form.EnableExpiration(true)
				form.SetExpirationDate(date)
			}

			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "destination URL")
	cmd.Flags().StringVar(&remark, "remark", "", "remark for the link")
	cmd.Flags().StringVar(&expires, "expires", "", "expiration date (YYYY-MM-DD)")

	return cmd
}

func newLinksEditCmd(injector *do.Injector) *cobra.Command {
	var (
		url      string
		remark   string
		expires  string
		noExpiry bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := do.MustInvoke[*links.Store](injector)
			client := do.MustInvoke[*api.Client](injector)
			sink := linkNotifier(injector)

			store.LoadAll(cmd.Context())

			record, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("no link with id %q", args[0])
			}

			form := links.NewEditForm(client, sink, store.UpsertFromServer)
			form.OpenWith(record)

			if url != "" {
				form.SetDestination(url)
			}

			if remark != "" {
				form.SetRemarks(remark)
			}

			if noExpiry {
				form.EnableExpiration(false)
			} else if expires != "" {
				date, err := time.Parse("2006-01-02", expires)
				if err != nil {
					return fmt.Errorf("invalid --expires date: %w", err)
				}

				form.EnableExpiration(true)
				form.SetExpirationDate(date)
			}

			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "new destination URL")
	cmd.Flags().StringVar(&remark, "remark", "", "new remark")
	cmd.Flags().StringVar(&expires, "expires", "", "new expiration date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noExpiry, "no-expiry", false, "remove the expiration date")

	return cmd
}

func newLinksDeleteCmd(injector *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := do.MustInvoke[*links.Store](injector)

			return store.Remove(cmd.Context(), args[0])
		},
	}
}

func renderLinks(store *links.Store) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tORIGINAL\tSHORT\tREMARKS\tCLICKS\tSTATUS\tID")

	for _, link := range store.Page() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			link.CreatedAt.Local().Format("01/02/2006 15:04"),
			truncate(link.OriginalURL, 50),
			truncate(link.ShortURL, 30),
			truncate(link.Remark, 20),
			link.TotalClicks,
			link.Status,
			link.ID,
		)
	}

	w.Flush()
	fmt.Printf("page %d of %d (%d links)\n", store.CurrentPage(), store.PageCount(), store.Len())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max]) + "..."
}
