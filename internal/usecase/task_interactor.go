package usecase

import (
	"context"
	"fmt"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// taskUseCase implements TaskUseCase
type taskUseCase struct {
	taskStorage ports.TaskStorage
}

// NewTaskUseCase создает новый экземпляр TaskUseCase
func NewTaskUseCase(taskStorage ports.TaskStorage) TaskUseCase {
	return &taskUseCase{taskStorage: taskStorage}
}

func (uc *taskUseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := uc.taskStorage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка получения списка задач: %w", err)
	}
	return tasks, nil
}

func (uc *taskUseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := uc.taskStorage.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("usecase: ошибка создания задачи: %w", err)
	}
	return task, nil
}

func (uc *taskUseCase) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := uc.taskStorage.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка получения задачи %d: %w", id, err)
	}
	return task, nil
}

// UpdateTask перечитывает задачу и переносит в нее изменяемые поля,
// затем сохраняет.
func (uc *taskUseCase) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*domain.Task, error) {
	task, err := uc.taskStorage.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка получения задачи %d: %w", id, err)
	}
	if task == nil {
		return nil, nil
	}

	task.Title = upd.Title
	task.Description = upd.Description
	task.Completed = upd.Completed

	if err := uc.taskStorage.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("usecase: ошибка обновления задачи %d: %w", id, err)
	}
	return task, nil
}

func (uc *taskUseCase) DeleteTask(ctx context.Context, id int64) (bool, error) {
	deleted, err := uc.taskStorage.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("usecase: ошибка удаления задачи %d: %w", id, err)
	}
	return deleted, nil
}
