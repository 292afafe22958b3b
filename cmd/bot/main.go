package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"football-roster-bot/cmd/bot/config"
	"football-roster-bot/internal/bot"
	"football-roster-bot/internal/log"
	"football-roster-bot/internal/server"
	"football-roster-bot/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "bot_config.yml", "путь к файлу конфигурации")
	flag.Parse()

	// 1. Загрузка и валидация конфигурации
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	// 2. Инициализация логгера с маскировкой токена
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch cfg.Logging.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := log.NewMaskedLogger(handler)
	slog.SetDefault(logger)

	// 3. Загрузка состояния. Повреждённый файл — фатальная ошибка,
	// автоматического восстановления нет.
	st := store.New(cfg.Bot.StateFile, store.Defaults{
		Time:  cfg.Bot.DefaultTime,
		Venue: cfg.Bot.DefaultVenue,
	})
	if err := st.Load(); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// 4. Инициализация бота и HTTP-сервера статуса
	b, err := bot.NewBot(cfg.Bot, st, logger.With(slog.String("component", "bot")))
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	srv := server.New(cfg, st)

	// 5. Запуск и graceful shutdown по сигналу
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go b.Start(ctx)

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("Starting status server", slog.String("addr", cfg.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()
	slog.Info("Signal received, shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	<-serverDone

	slog.Info("Application exited gracefully")
	return nil
}
