package main

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/justkashish/linkview/internal/resolver"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newResolveCmd(injector *do.Injector) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "resolve <code>",
		Short: "Resolve a short code to its destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := do.MustInvoke[*resolver.Resolver](injector)

			url, err := r.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if open {
				return openBrowser(url)
			}

			fmt.Println(url)

			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the destination in the default browser")

	return cmd
}

// openBrowser performs the full navigation: destinations are arbitrary
// external sites, so this hands off to the OS.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
