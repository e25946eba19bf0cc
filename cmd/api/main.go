package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Werneck0live/calculadora-energia/internal/admin"
	"github.com/Werneck0live/calculadora-energia/internal/aneel"
	"github.com/Werneck0live/calculadora-energia/internal/broker"
	"github.com/Werneck0live/calculadora-energia/internal/config"
	"github.com/Werneck0live/calculadora-energia/internal/db"
	"github.com/Werneck0live/calculadora-energia/internal/handlers"
	"github.com/Werneck0live/calculadora-energia/internal/middleware"
	"github.com/Werneck0live/calculadora-energia/internal/repository"
	"github.com/Werneck0live/calculadora-energia/internal/viacep"
)

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed|sync|set-bandeira|set-tarifa")
	flagName := flag.String("bandeira", "", "set-bandeira: Verde|Amarela|Vermelha Patamar 1|Vermelha Patamar 2")
	state := flag.String("estado", "", "set-tarifa: UF")
	tariff := flag.Float64("tarifa", 0, "set-tarifa: R$/kWh")
	flag.Parse()

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		slog.Error("mongo_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := repository.NewTariffRepository(client.Database(cfg.MongoDB))

	if *task != "" {
		if err := runTask(cfg, repo, *task, *flagName, *state, *tariff); err != nil {
			slog.Error("task_failed", "task", *task, "err", err)
			_ = client.Disconnect(context.Background())
			os.Exit(1)
		}
		slog.Info("task_done", "task", *task)
		return // encerra o processo sem subir HTTP
	}

	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB)

	ictx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.EnsureIndexes(ictx); err != nil {
		slog.Warn("ensure_indexes_failed", "err", err)
	}
	// base vazia: carrega a tabela de referência
	if n, err := repo.CountTariffs(ictx); err == nil && n == 0 {
		if err := admin.SeedTariffs(ictx, repo, nil, slog.Default()); err != nil {
			slog.Warn("auto_seed_failed", "err", err)
		}
	}
	cancel()

	cepClient := viacep.NewClient(cfg.ViaCEPURL, cfg.ViaCEPTimeout, slog.Default())
	h := handlers.NewEstimateHandler(repo, cepClient, slog.Default(), cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/health", h.Health)
	mux.HandleFunc("/calculate", h.Calculate)
	mux.HandleFunc("/api/calculate", h.Calculate)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.Log(slog.Default(), mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful_shutdown_error", "err", err)
	}
	slog.Info("stopped")
}

func runTask(cfg *config.Config, repo *repository.TariffRepository, task, flagName, state string, tariff float64) error {
	ctx := context.Background()
	log := slog.Default().With("task", task)

	// eventos são opcionais: sem Rabbit a tarefa grava e só não notifica
	var pub admin.Publisher
	if p, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue); err != nil {
		log.Warn("rabbitmq_unavailable_events_skipped", "err", err)
	} else {
		defer p.Close()
		pub = p
	}

	switch task {
	case "seed":
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		return admin.SeedTariffs(ctx, repo, pub, log)

	case "sync":
		src := aneel.NewClient(cfg.AneelURL, cfg.AneelTimeout, cfg.AneelLimit, log)
		_, err := admin.SyncTariffs(ctx, src, repo, pub, time.Now(), log)
		return err

	case "set-bandeira":
		if flagName == "" {
			return errors.New("informe -bandeira")
		}
		_, err := admin.SetFlagByName(ctx, repo, pub, flagName, time.Now(), log)
		return err

	case "set-tarifa":
		if state == "" {
			return errors.New("informe -estado e -tarifa")
		}
		_, err := admin.SetStateTariff(ctx, repo, pub, state, tariff, time.Now(), log)
		return err

	default:
		return fmt.Errorf("unknown admin task %q", task)
	}
}
