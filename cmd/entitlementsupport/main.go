package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iurnickita/entitlementsupport/internal/actions"
	"github.com/iurnickita/entitlementsupport/internal/auth"
	"github.com/iurnickita/entitlementsupport/internal/config"
	"github.com/iurnickita/entitlementsupport/internal/entitlementclient"
	"github.com/iurnickita/entitlementsupport/internal/handler"
	"github.com/iurnickita/entitlementsupport/internal/journal"
	"github.com/iurnickita/entitlementsupport/internal/logger"
	"github.com/iurnickita/entitlementsupport/internal/state"
	"github.com/iurnickita/entitlementsupport/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	zaplog, logLevel, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	journal, err := journal.New(cfg.Journal)
	if err != nil {
		return err
	}
	defer journal.Close()

	client := entitlementclient.NewClient(cfg.Client)
	creators := actions.NewCreators(client, journal, zaplog)
	store := store.New(state.Reduce, state.Initial(), store.Logging(zaplog), store.Metrics())
	unsubscribe := store.Subscribe(logStateChange(zaplog))
	defer unsubscribe()
	auth := auth.NewAuth(cfg.Auth)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Serve(ctx, cfg.Handler, auth, store, creators, journal, logLevel, zaplog)
	})
	g.Go(func() error {
		// отменяем запросы к API, чтобы ожидающие обработчики вернулись до остановки сервера
		<-ctx.Done()
		store.Close()
		zaplog.Info("store closed", zap.NamedError("reason", context.Cause(ctx)))
		return nil
	})

	return g.Wait()
}

// logStateChange пишет в debug сводку состояния после каждого действия
func logStateChange(zaplog *zap.Logger) func(state.State) {
	return func(s state.State) {
		zaplog.Debug("state changed",
			zap.String("entitlements_status", string(s.Entitlements.Status)),
			zap.Int("entitlements", len(s.Entitlements.Items)),
			zap.Bool("modal_open", s.Modal.ModalOpen),
			zap.String("modal_status", string(s.Modal.Status)),
		)
	}
}
