package main

import (
	"context"
	"fmt"
	"os"

	"github.com/justkashish/linkview/internal/config"
	"github.com/justkashish/linkview/internal/container"
	"github.com/justkashish/linkview/internal/notify"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	injector := container.Build(cfg)

	logger := do.MustInvoke[*zap.Logger](injector)
	bus := do.MustInvoke[*notify.Bus](injector)

	// Notifications render to stderr so tables on stdout stay clean.
	consumer := notify.NewConsumer(bus.Subscriber(), renderNotification, logger)
	if err := consumer.Start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	root := newRootCmd(injector)
	err := root.Execute()

	_ = consumer.Shutdown()
	_ = bus.Shutdown()
	_ = injector.Shutdown()

	if err != nil {
		os.Exit(1)
	}
}

func renderNotification(n notify.Notification) {
	marker := "ok"
	if n.Level == notify.LevelError {
		marker = "error"
	}

	fmt.Fprintf(os.Stderr, "[%s] %s\n", marker, n.Text)
}
