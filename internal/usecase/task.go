package usecase

import (
	"context"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// TaskUpdate — изменяемые поля задачи при обновлении.
type TaskUpdate struct {
	Title       string
	Description string
	Completed   bool
}

// TaskUseCase определяет интерфейс бизнес-логики работы с задачами.
// Бизнес-правил сверх доступа к хранилищу здесь нет: проверка прав
// выполняется до вызова, в Guard.
type TaskUseCase interface {
	// ListTasks возвращает все задачи
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask сохраняет новую задачу и возвращает ее с присвоенным ID
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetTask возвращает задачу по ID, (nil, nil) если не найдена
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask обновляет title/description/completed существующей задачи,
	// (nil, nil) если задачи нет
	UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*domain.Task, error)

	// DeleteTask удаляет задачу, возвращает false если записи не было
	DeleteTask(ctx context.Context, id int64) (bool, error)
}
