package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/auth"
	"github.com/GoArmGo/TasksAPI/internal/config"
	"github.com/GoArmGo/TasksAPI/internal/handler"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер и блокируется до отмены контекста
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	authUseCase usecase.AuthUseCase,
	taskUseCase usecase.TaskUseCase,
	guard *auth.Guard,
) error {
	authHandler := handler.NewAuthHandler(authUseCase, logger)
	taskHandler := handler.NewTaskHandler(taskUseCase, logger)

	r := NewRouter(cfg, logger, authHandler, taskHandler, guard)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("termination signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}

// NewRouter собирает маршруты API: открытые ручки аутентификации
// и CRUD задач за Guard-ом.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	guard *auth.Guard,
) chi.Router {
	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signin", authHandler.SignIn)
		r.Post("/signup", authHandler.SignUp)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.With(handler.RequireOperation(guard, auth.OpListTasks, logger)).Get("/", taskHandler.ListTasks)
		r.With(handler.RequireOperation(guard, auth.OpCreateTask, logger)).Post("/", taskHandler.CreateTask)
		r.With(handler.RequireOperation(guard, auth.OpGetTask, logger)).Get("/{id}", taskHandler.GetTask)
		r.With(handler.RequireOperation(guard, auth.OpUpdateTask, logger)).Put("/{id}", taskHandler.UpdateTask)
		r.With(handler.RequireOperation(guard, auth.OpDeleteTask, logger)).Delete("/{id}", taskHandler.DeleteTask)
	})

	return r
}
