package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Минимальная длина секрета для HS256 — 256 бит.
const minSecretLen = 32

// Ошибки проверки токена. Guard сводит их все к 401,
// различие нужно только для логирования.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenInvalid   = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

// Claims — структура утверждений токена: стандартные утверждения
// плюс роль пользователя.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager выпускает и проверяет подписанные токены доступа.
// Состояние на сервере не хранится: подпись и срок действия
// полностью определяют валидность токена.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создает TokenManager с заданным секретом и сроком действия.
// Слишком короткий секрет — ошибка конфигурации, а не запроса.
func NewTokenManager(secret []byte, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("секрет подписи короче %d байт", minSecretLen)
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: secret, ttl: ttl}, nil
}

// Issue выпускает токен для пользователя с указанной ролью.
func (m *TokenManager) Issue(username, role string) (string, error) {
	return m.IssueAt(username, role, time.Now())
}

// IssueAt выпускает токен с заданным моментом выпуска.
// Срок действия — issuedAt + TTL.
func (m *TokenManager) IssueAt(username, role string, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
		Role: role,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена и возвращает его claims.
// Возвращает ErrTokenMalformed / ErrTokenInvalid / ErrTokenExpired.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Subject проверяет токен и возвращает имя пользователя из него.
func (m *TokenManager) Subject(tokenString string) (string, error) {
	claims, err := m.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
