package ports

import (
	"context"
	"errors"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// Ошибки нарушения уникальных индексов, которые Save обязан распознавать:
// проверки ExistsBy* — лишь быстрый путь, гонку закрывает база.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// GetByUsername возвращает пользователя по имени, (nil, nil) если не найден
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername проверяет, занято ли имя пользователя
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail проверяет, занят ли email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save сохраняет нового пользователя; ID присваивается базой
	Save(ctx context.Context, user *domain.User) error
}

// TaskStorage определяет методы для взаимодействия с хранилищем задач
type TaskStorage interface {
	// List возвращает все задачи
	List(ctx context.Context) ([]domain.Task, error)

	// GetByID возвращает задачу по ID, (nil, nil) если не найдена
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create сохраняет новую задачу; ID присваивается базой
	Create(ctx context.Context, task *domain.Task) error

	// Update сохраняет измененную задачу
	Update(ctx context.Context, task *domain.Task) error

	// Delete удаляет задачу, возвращает false если записи не было
	Delete(ctx context.Context, id int64) (bool, error)
}
