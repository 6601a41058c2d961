package di

import (
	"github.com/GoArmGo/TasksAPI/internal/app"
	"github.com/GoArmGo/TasksAPI/internal/auth"
	"github.com/GoArmGo/TasksAPI/internal/config"
	"github.com/GoArmGo/TasksAPI/internal/database/client"
	"github.com/GoArmGo/TasksAPI/internal/database/storage"
	"github.com/GoArmGo/TasksAPI/internal/logger"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + миграции + GORM)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)
	taskStorage := storage.NewTaskStorage(dbClient.Gorm, slogger)

	// 4. Инициализация компонентов аутентификации.
	// Короткий секрет — ошибка на старте, дальше не идем.
	tokens, err := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewPasswordHasher()
	guard := auth.NewGuard(tokens, slogger)

	// 5. Инициализация бизнес-логики (usecases)
	authUseCase := usecase.NewAuthUseCase(userStorage, hasher, tokens, slogger)
	taskUseCase := usecase.NewTaskUseCase(taskStorage)

	// 6. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		authUseCase,
		taskUseCase,
		guard,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
