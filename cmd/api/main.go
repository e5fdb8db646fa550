package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastprodman/TopupLedger/internal/api"
	"github.com/fastprodman/TopupLedger/internal/catalog"
	"github.com/fastprodman/TopupLedger/internal/infra/logging"
	"github.com/fastprodman/TopupLedger/internal/infra/pgnotify"
	"github.com/fastprodman/TopupLedger/internal/infra/pgutils"
	"github.com/fastprodman/TopupLedger/internal/jobs"
	"github.com/fastprodman/TopupLedger/internal/services/ledger"
	"github.com/fastprodman/TopupLedger/internal/services/liveview"
	"github.com/fastprodman/TopupLedger/pkg/envconf"
	"github.com/fastprodman/TopupLedger/pkg/shutdownqueue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	flush, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer flush()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	queue := shutdownqueue.New()
	shutdown := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return queue.Shutdown(shutdownCtx)
	}

	defer func() {
		serr := shutdown()
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	queue.Add("db", func(context.Context) error { return db.Close() })

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	hub := liveview.NewHub()
	listener := pgnotify.New(cfg.Postgres.DSN, liveview.Channel, hub.HandleNotification,
		pgnotify.WithOnListen(func(first bool) {
			if !first {
				hub.Resync()
			}
		}))

	// --- Services ---
	svc := ledger.New(db, hub, ledger.Config{
		AdminEmail:  cfg.Auth.AdminEmail,
		AddMoneyMin: cfg.Ledger.AddMoneyMin,
		ListLimit:   cfg.Ledger.OrderListLimit,
		Location:    loc,
	})

	scheduler, err := jobs.NewScheduler(svc, cfg.Jobs.DailyReportSpec, loc)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.NewHandler(svc, cat, api.NewAuthenticator(cfg.Auth)))

	queue.Add("http", func(c context.Context) error {
		zap.L().Info("shutting down http server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("API started", zap.Uint16("port", cfg.Port))

		serr := srv.ListenAndServe()
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	})

	g.Go(func() error {
		lerr := listener.Run(gctx)
		if lerr != nil && !errors.Is(lerr, context.Canceled) {
			return fmt.Errorf("notification listener: %w", lerr)
		}

		return nil
	})

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	g.Go(func() error {
		select {
		case <-listener.Ready():
			zap.L().Info("change feed live", zap.String("channel", liveview.Channel))
		case <-gctx.Done():
		}

		return nil
	})

	// The server only returns once shut down, so the drain starts as soon as
	// the group is cancelled.
	g.Go(func() error {
		<-gctx.Done()
		return shutdown()
	})

	return g.Wait()
}
