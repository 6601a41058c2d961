package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/TasksAPI/internal/auth"
	"github.com/GoArmGo/TasksAPI/internal/config"
	"github.com/GoArmGo/TasksAPI/internal/database/client"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

type App struct {
	Config      *config.Config
	logger      *slog.Logger
	dbClient    *client.Client
	authUseCase usecase.AuthUseCase
	taskUseCase usecase.TaskUseCase
	guard       *auth.Guard
}

func NewApp(cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	authUseCase usecase.AuthUseCase,
	taskUseCase usecase.TaskUseCase,
	guard *auth.Guard) *App {
	return &App{
		Config:      cfg,
		logger:      logger,
		dbClient:    dbClient,
		authUseCase: authUseCase,
		taskUseCase: taskUseCase,
		guard:       guard,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "port", a.Config.ServerPort)

	if err := runServer(ctx, a.Config, a.logger, a.authUseCase, a.taskUseCase, a.guard); err != nil {
		return err
	}

	a.logger.Info("shutting down application")

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
