package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/tictac-client/internal/archive"
	appcfg "github.com/kapu/tictac-client/internal/config"
	"github.com/kapu/tictac-client/internal/msgcat"
	"github.com/kapu/tictac-client/internal/obslog"
	"github.com/kapu/tictac-client/internal/profile"
	"github.com/kapu/tictac-client/internal/session"
	"github.com/kapu/tictac-client/internal/statusapi"
	"github.com/kapu/tictac-client/internal/transport"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	cat, err := msgcat.New(cfg.MessageDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	store := newProfileStore(cfg.RedisURL)
	defer func() { _ = store.Close() }()

	clientID := uuid.NewString()
	obslog.L().Info("client_start", zap.String("client_id", clientID), zap.String("server", cfg.ServerWSURL))

	opts := []session.Option{
		session.WithClientID(clientID),
		session.WithProfile(store),
	}

	var repo *archive.Repository
	if cfg.DatabaseURL != "" {
		repo, err = archive.NewRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		defer func() { _ = repo.Close() }()
		schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureSchema(schemaCtx); err != nil {
			cancel()
			log.Fatalf("archive schema error: %v", err)
		}
		cancel()
		opts = append(opts, session.WithRecorder(repo))
	}

	ws := transport.NewWebSocket(cfg.ServerWSURL, cfg.ReconnectAttempts, cfg.ReconnectDelay)
	ws.SetDialTimeout(cfg.DialTimeout)
	ws.OnStateChange(func(state transport.State) {
		obslog.L().Info("ws_state", zap.String("state", string(state)))
	})

	core := session.New(&consoleUI{}, ws, cat, opts...)
	loop := session.NewLoop(core, 256)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go loop.Run(ctx)

	seedProfile(store, core, loop)

	ws.OnMessage(loop.HandleRaw)

	var statusSrv *statusapi.Server
	if cfg.StatusAddr != "" {
		statusSrv = statusapi.New(cfg.StatusAddr, loop.Snapshot)
		if err := statusSrv.Start(); err != nil {
			log.Fatalf("status server error: %v", err)
		}
	}

	cctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		log.Fatalf("ws connect error: %v", err)
	}
	cancel()

	<-ctx.Done()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = ws.Close(closeCtx)
	closeCancel()
	if statusSrv != nil {
		_ = statusSrv.Close()
	}
	loop.Close()
}

func newProfileStore(redisURL string) profile.Store {
	if redisURL == "" {
		return profile.NewMemory()
	}
	store, err := profile.NewRedis(redisURL)
	if err != nil {
		log.Fatalf("profile store error: %v", err)
	}
	return store
}

// seedProfile preloads persisted autofill state onto the event loop before
// the first server frames arrive.
func seedProfile(store profile.Store, core *session.Core, loop *session.Loop) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	entries, err := store.LoadAccounts(ctx)
	if err != nil {
		obslog.L().Warn("profile_load_failed", zap.Error(err))
	} else if len(entries) > 0 {
		loop.Post(func() { core.SeedAccounts(entries) })
	}
	if room, err := store.LastRoom(ctx); err == nil && room != "" {
		obslog.L().Info("last_room", zap.String("room", room))
	}
}
