package main

import (
	"errors"
	"time"

	"github.com/justkashish/linkview/internal/notify"
	"github.com/justkashish/linkview/internal/session"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("no session found, run 'linkview login' first")

func newRootCmd(injector *do.Injector) *cobra.Command {
	root := &cobra.Command{
		Use:           "linkview",
		Short:         "Command-line client for the link shortener",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(injector),
		newSignupCmd(injector),
		newLogoutCmd(injector),
		newLinksCmd(injector),
		newAnalyticsCmd(injector),
		newStatsCmd(injector),
		newProfileCmd(injector),
		newResolveCmd(injector),
	)

	return root
}

// requireSession fails fast for commands behind the authenticated area.
func requireSession(injector *do.Injector) error {
	sessions := do.MustInvoke[*session.Manager](injector)

	current, ok := sessions.Current()
	if !ok {
		return errNotLoggedIn
	}

	if current.Expired(time.Now()) {
		return errors.New("session has expired, run 'linkview login' again")
	}

	return nil
}

func linkNotifier(injector *do.Injector) *notify.Sink {
	return do.MustInvoke[*notify.Sink](injector)
}
