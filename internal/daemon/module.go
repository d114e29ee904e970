// Package daemon composes clackd: the profile lock, the SQLite store, the
// token authority, the HTTP API, and the lifecycle state machine.
package daemon

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/clack-chat/clack/internal/api"
	"github.com/clack-chat/clack/internal/auth"
	"github.com/clack-chat/clack/internal/bus"
	"github.com/clack-chat/clack/internal/lock"
	"github.com/clack-chat/clack/internal/logging"
	"github.com/clack-chat/clack/internal/profile"
	"github.com/clack-chat/clack/internal/status"
	"github.com/clack-chat/clack/internal/store"
)

// Params holds the resolved daemon configuration passed to the fx module.
type Params struct {
	ProfileName string
	ListenAddr  string
}

// Module returns the fx module for the daemon, composing all providers and
// lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideTokens,
			provideHandler,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	return logging.New(profile.DaemonLogPath(p.ProfileName), p.ProfileName)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideStore(p Params, machine *status.Machine, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.DBPath(p.ProfileName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	_ = machine.Transition(status.Migrating)
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		_ = machine.Transition(status.Error)
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideTokens(logger *zap.Logger) (*auth.Tokens, error) {
	t, err := auth.NewTokens()
	if err != nil {
		return nil, err
	}
	logger.Info("token authority initialized")
	return t, nil
}

func provideHandler(db *store.DB, tokens *auth.Tokens, b *bus.Bus, machine *status.Machine, logger *zap.Logger) *api.Handler {
	return api.NewHandler(db, tokens, b, machine, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, db *store.DB, machine *status.Machine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("http server error", zap.Error(err))
					_ = machine.Transition(status.Error)
				}
			}()
			_ = machine.Transition(status.Serving)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = machine.Transition(status.Stopping)
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
