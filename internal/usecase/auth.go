package usecase

import (
	"context"
	"errors"
)

// Ошибки аутентификации. Причина отказа при входе наружу не различается:
// неизвестное имя и неверный пароль дают один и тот же ErrInvalidCredentials.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
)

// SignInResult — результат успешного входа: токен доступа и данные
// пользователя для ответа клиенту.
type SignInResult struct {
	AccessToken string
	ID          int64
	Username    string
	Email       string
	Role        string
}

// AuthUseCase определяет интерфейс бизнес-логики аутентификации.
type AuthUseCase interface {
	// SignIn проверяет учетные данные и выпускает токен доступа.
	// Возвращает ErrInvalidCredentials при неизвестном имени или неверном пароле.
	SignIn(ctx context.Context, username, password string) (*SignInResult, error)

	// SignUp регистрирует нового пользователя с ролью по умолчанию.
	// Токен при регистрации не выпускается: клиент должен отдельно войти.
	SignUp(ctx context.Context, username, email, password string) error
}
