package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/TasksAPI/internal/auth"
	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// сравнение с хешем этой строки выполняется, когда пользователь
// не найден: время ответа не должно отличаться от случая
// неверного пароля
const dummyPassword = "no-such-user-password-placeholder"

// authUseCase implements AuthUseCase
type authUseCase struct {
	userStorage ports.UserStorage
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenManager
	logger      *slog.Logger

	dummyHash string
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(
	userStorage ports.UserStorage,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	logger *slog.Logger,
) AuthUseCase {
	// bcrypt с дефолтной стоимостью на валидном входе не возвращает ошибку
	dummyHash, _ := hasher.Hash(dummyPassword)
	return &authUseCase{
		userStorage: userStorage,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		dummyHash:   dummyHash,
	}
}

// SignIn ищет пользователя по имени и сверяет пароль с сохраненным хешем.
// Отсутствие пользователя и неверный пароль неразличимы в ответе,
// чтобы не раскрывать занятые имена.
func (uc *authUseCase) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	user, err := uc.userStorage.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}
	if user == nil {
		// холостая проверка: неизвестное имя и неверный пароль
		// не различимы и по времени ответа
		uc.hasher.Check(password, uc.dummyHash)
		uc.logger.Warn("sign-in rejected", "username", username)
		return nil, ErrInvalidCredentials
	}
	if !uc.hasher.Check(password, user.PasswordHash) {
		uc.logger.Warn("sign-in rejected", "username", username)
		return nil, ErrInvalidCredentials
	}

	role := user.RoleOrDefault()
	token, err := uc.tokens.Issue(user.Username, role)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка выпуска токена: %w", err)
	}

	uc.logger.Info("user signed in", "username", user.Username, "role", role)
	return &SignInResult{
		AccessToken: token,
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        role,
	}, nil
}

// SignUp проверяет уникальность имени и email (в этом порядке, первое
// нарушение останавливает проверку), хеширует пароль и сохраняет
// пользователя. Гонку check-then-act закрывают уникальные индексы в бд.
func (uc *authUseCase) SignUp(ctx context.Context, username, email, password string) error {
	taken, err := uc.userStorage.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("usecase: ошибка проверки имени: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = uc.userStorage.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("usecase: ошибка проверки email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("usecase: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleMember,
	}
	if err := uc.userStorage.Save(ctx, user); err != nil {
		// проигравший гонку check-then-act получает тот же ответ,
		// что и при занятом имени на быстром пути
		switch {
		case errors.Is(err, ports.ErrDuplicateUsername):
			return ErrUsernameTaken
		case errors.Is(err, ports.ErrDuplicateEmail):
			return ErrEmailTaken
		}
		return fmt.Errorf("usecase: ошибка сохранения пользователя: %w", err)
	}

	uc.logger.Info("user registered", "username", username)
	return nil
}
