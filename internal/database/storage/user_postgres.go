package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// код ошибки postgres unique_violation
const uniqueViolation = "23505"

// UserStorage реализует интерфейс ports.UserStorage с использованием GORM
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// GetByUsername получает пользователя по имени
func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get user by username", "username", username, "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении пользователя по имени: %w", result.Error)
	}
	return &user, nil
}

// ExistsByUsername проверяет наличие пользователя с таким именем
func (s *UserStorage) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке имени пользователя: %w", result.Error)
	}
	return count > 0, nil
}

// ExistsByEmail проверяет наличие пользователя с таким email
func (s *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке email: %w", result.Error)
	}
	return count > 0, nil
}

// Save сохраняет нового пользователя в бд
func (s *UserStorage) Save(ctx context.Context, user *domain.User) error {
	start := time.Now()

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		var pqErr *pq.Error
		if errors.As(result.Error, &pqErr) && pqErr.Code == uniqueViolation {
			if strings.Contains(pqErr.Constraint, "email") {
				return ports.ErrDuplicateEmail
			}
			return ports.ErrDuplicateUsername
		}
		s.logger.Error("failed to save user", "username", user.Username, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении пользователя: %w", result.Error)
	}

	s.logger.Info("user saved successfully",
		"id", user.ID,
		"username", user.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
