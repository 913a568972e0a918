package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/gudangpro/inventory/internal/config"
	"github.com/gudangpro/inventory/internal/domain/dashboard"
	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
	"github.com/gudangpro/inventory/internal/domain/users"
	"github.com/gudangpro/inventory/internal/infra/db"
	"github.com/gudangpro/inventory/internal/infra/httpapi"
	"github.com/gudangpro/inventory/internal/infra/logger"
	"github.com/gudangpro/inventory/internal/infra/notify"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn("bad timezone, using local", "tz", cfg.App.Timezone)
		loc = time.Local
	}

	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	var notifier movement.Notifier
	if tg != nil {
		notifier = tg
		log.Info("critical stock alerts enabled", "chat_id", cfg.Telegram.AdminChatID)
	}

	userRepo := users.NewRepo(pool)
	partRepo := sparepart.NewRepo(pool)
	moveRepo := movement.NewRepo(pool)

	partSvc := sparepart.NewService(partRepo, log)
	moveSvc := movement.NewService(moveRepo, notifier, log)
	dashSvc := dashboard.NewService(partRepo, moveRepo, loc)

	handler := httpapi.NewHandler(partSvc, moveSvc, dashSvc, loc, log)
	router := httpapi.NewRouter(handler, []byte(cfg.Auth.JWTSecret), userRepo, cfg.Metrics.Enabled)

	srv := httpapi.New(cfg.HTTP.Addr, router)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
