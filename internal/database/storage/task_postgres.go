package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"gorm.io/gorm"
)

// TaskStorage реализует интерфейс ports.TaskStorage с использованием GORM
type TaskStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStorage создает новый экземпляр TaskStorage
func NewTaskStorage(db *gorm.DB, logger *slog.Logger) *TaskStorage {
	return &TaskStorage{db: db, logger: logger}
}

// List получает все задачи из бд
func (s *TaskStorage) List(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	result := s.db.WithContext(ctx).Order("id").Find(&tasks)
	if result.Error != nil {
		s.logger.Error("failed to list tasks", "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении списка задач: %w", result.Error)
	}
	return tasks, nil
}

// GetByID получает задачу по ID
func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	result := s.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get task by id", "id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении задачи по ID: %w", result.Error)
	}
	return &task, nil
}

// Create сохраняет новую задачу в бд
func (s *TaskStorage) Create(ctx context.Context, task *domain.Task) error {
	start := time.Now()

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(task)
	if result.Error != nil {
		s.logger.Error("failed to create task", "error", result.Error)
		return fmt.Errorf("ошибка при создании задачи: %w", result.Error)
	}

	s.logger.Info("task created successfully",
		"id", task.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Update сохраняет измененную задачу
func (s *TaskStorage) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now()

	result := s.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		s.logger.Error("failed to update task", "id", task.ID, "error", result.Error)
		return fmt.Errorf("ошибка при обновлении задачи: %w", result.Error)
	}
	return nil
}

// Delete удаляет задачу по ID, возвращает false если записи не было
func (s *TaskStorage) Delete(ctx context.Context, id int64) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		s.logger.Error("failed to delete task", "id", id, "error", result.Error)
		return false, fmt.Errorf("ошибка при удалении задачи: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
