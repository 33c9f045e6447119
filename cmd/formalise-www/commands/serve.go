package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/getsentry/sentry-go"
	"github.com/oklog/run"

	"github.com/goliatone/go-formalise/internal/log"
	"github.com/goliatone/go-formalise/internal/server"
	"github.com/goliatone/go-formalise/internal/storage/sqlite"
	"github.com/goliatone/go-formalise/pkg/site"
	"github.com/goliatone/go-formalise/pkg/submission"
)

const shutdownTimeout = 15 * time.Second

type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	addr       string
	watch      bool
	memory     bool
	sentryDSN  string
	sentryEnv  string
	rateLimit  float64
	rateBurst  int
	proxies    []string
	bcryptCost int
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}
	defaults := server.DefaultRateLimitConfig()

	c.Cmd = app.Command("serve", "Serve the documentation site and the form examples.")
	c.Cmd.Flag("addr", "Listen address (host:port).").Default(":8080").StringVar(&c.addr)
	c.Cmd.Flag("watch", "Reload the site configuration when the file changes.").BoolVar(&c.watch)
	c.Cmd.Flag("memory", "Keep submissions in memory instead of SQLite.").BoolVar(&c.memory)
	c.Cmd.Flag("sentry-dsn", "Sentry DSN, error reporting is disabled when empty.").Envar("SENTRY_DSN").StringVar(&c.sentryDSN)
	c.Cmd.Flag("sentry-environment", "Sentry environment name.").Default("production").StringVar(&c.sentryEnv)
	c.Cmd.Flag("rate-limit", "Form posts per second allowed per client, 0 disables limiting.").Default(fmt.Sprint(defaults.RequestsPerSecond)).Float64Var(&c.rateLimit)
	c.Cmd.Flag("rate-burst", "Burst of form posts allowed per client.").Default(fmt.Sprint(defaults.Burst)).IntVar(&c.rateBurst)
	c.Cmd.Flag("trusted-proxy", "CIDR of a reverse proxy whose X-Forwarded-For is used for rate limiting, repeatable.").StringsVar(&c.proxies)
	c.Cmd.Flag("bcrypt-cost", "Cost used to hash password fields of submissions.").Default("10").IntVar(&c.bcryptCost)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	if c.sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              c.sentryDSN,
			Environment:      c.sentryEnv,
			Release:          Version,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Warningf("sentry initialization failed: %s", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	proxies, err := server.ParseTrustedProxies(c.proxies)
	if err != nil {
		return err
	}

	store, closeStore, err := c.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	holder, err := site.NewHolder(c.rootCmd.ConfigPath)
	if err != nil {
		return fmt.Errorf("could not load site configuration: %w", err)
	}

	srv, err := server.New(ctx, server.Config{
		Site:       holder,
		Store:      store,
		Logger:     logger,
		BcryptCost: c.bcryptCost,
		RateLimit: server.RateLimitConfig{
			RequestsPerSecond: c.rateLimit,
			Burst:             c.rateBurst,
			TrustedProxies:    proxies,
		},
	})
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              c.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group

	// HTTP server.
	{
		g.Add(
			func() error {
				logger.Infof("Listening on %s", c.addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			},
			func(_ error) {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					logger.Errorf("Server shutdown failed: %s", err)
				}
			},
		)
	}

	// Parent cancellation.
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				<-ctx.Done()
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Site configuration reloads.
	if c.watch {
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				return holder.Watch(ctx,
					func(snapshot site.Snapshot) {
						logger.WithValues(log.Kv{"theme": snapshot.Config.Theme.Name}).Infof("Site configuration reloaded")
					},
					func(err error) {
						logger.Warningf("Site configuration reload failed: %s", err)
					},
				)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

func (c ServeCommand) openStore(ctx context.Context, logger log.Logger) (submission.Store, func(), error) {
	if c.memory {
		return submission.NewMemoryStore(), func() {}, nil
	}
	store, err := sqlite.NewStore(ctx, sqlite.StoreConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create submission store: %w", err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Errorf("Could not close submission store: %s", err)
		}
	}, nil
}
