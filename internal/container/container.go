// Package container assembles the client's services.
package container

import (
	"github.com/justkashish/linkview/internal/analytics"
	"github.com/justkashish/linkview/internal/api"
	"github.com/justkashish/linkview/internal/auth"
	"github.com/justkashish/linkview/internal/config"
	"github.com/justkashish/linkview/internal/links"
	"github.com/justkashish/linkview/internal/notify"
	"github.com/justkashish/linkview/internal/resolver"
	"github.com/justkashish/linkview/internal/search"
	"github.com/justkashish/linkview/internal/session"
	"github.com/justkashish/linkview/internal/stats"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)

		if cfg.Debug {
			return zap.NewDevelopment()
		}

		// The CLI owns stdout; keep operational logs quiet by default.
		logCfg := zap.NewProductionConfig()
		logCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)

		return logCfg.Build()
	})
}

// SessionPackage provides the session store and manager.
func SessionPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (session.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)

		if cfg.SessionBackend == "redis" {
			client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

			return session.NewRedisStore(client), nil
		}

		path := cfg.SessionFile
		if path == "" {
			resolved, err := session.DefaultPath()
			if err != nil {
				return nil, err
			}

			path = resolved
		}

		return session.NewFileStore(path), nil
	})

	do.Provide(injector, func(i *do.Injector) (*session.Manager, error) {
		return session.NewManager(do.MustInvoke[session.Store](i)), nil
	})
}

// NotifyPackage provides the notification bus and sink.
func NotifyPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*notify.Bus, error) {
		return notify.NewBus(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*notify.Sink, error) {
		bus := do.MustInvoke[*notify.Bus](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return notify.NewSink(bus.Publisher(), logger), nil
	})
}

// ClientPackage provides the backend HTTP client.
func ClientPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*api.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		sessions := do.MustInvoke[*session.Manager](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return api.NewClient(cfg.APIBaseURL, sessions, logger), nil
	})
}

// ViewPackage provides the view-state controllers.
func ViewPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*search.Query, error) {
		return search.NewQuery(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*links.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*api.Client](i)
		sink := do.MustInvoke[*notify.Sink](i)
		logger := do.MustInvoke[*zap.Logger](i)

		store := links.NewStore(client, sink, logger)
		store.SetPageSize(cfg.PageSize)

		return store, nil
	})

	do.Provide(injector, func(i *do.Injector) (*analytics.View, error) {
		client := do.MustInvoke[*api.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return analytics.NewView(client, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*stats.View, error) {
		client := do.MustInvoke[*api.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return stats.NewView(client, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*resolver.Resolver, error) {
		client := do.MustInvoke[*api.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return resolver.New(client, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*auth.Flows, error) {
		client := do.MustInvoke[*api.Client](i)
		sessions := do.MustInvoke[*session.Manager](i)
		query := do.MustInvoke[*search.Query](i)
		sink := do.MustInvoke[*notify.Sink](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return auth.NewFlows(client, sessions, query, sink, logger), nil
	})
}

// Build registers every package into a fresh injector.
func Build(cfg *config.Config) *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	LoggerPackage(injector)
	SessionPackage(injector)
	NotifyPackage(injector)
	ClientPackage(injector)
	ViewPackage(injector)

	return injector
}
