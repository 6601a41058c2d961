package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// Идентификаторы защищаемых операций. Набор ролей для каждой операции
// фиксируется на этапе компиляции в operationRoles.
const (
	OpListTasks  = "tasks.list"
	OpCreateTask = "tasks.create"
	OpGetTask    = "tasks.get"
	OpUpdateTask = "tasks.update"
	OpDeleteTask = "tasks.delete"
)

// operationRoles — статическая карта операция -> допустимые роли.
var operationRoles = map[string][]string{
	OpListTasks:  {domain.RoleMember, domain.RoleAdmin},
	OpCreateTask: {domain.RoleMember, domain.RoleAdmin},
	OpGetTask:    {domain.RoleMember, domain.RoleAdmin},
	OpUpdateTask: {domain.RoleMember, domain.RoleAdmin},
	OpDeleteTask: {domain.RoleAdmin},
}

// Decision — результат проверки доступа.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

// Principal — аутентифицированный вызывающий, восстановленный из токена.
// Живет только в контексте одного запроса.
type Principal struct {
	Username string
	Role     string
}

type principalKey struct{}

// WithPrincipal кладет principal в контекст запроса.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext достает principal из контекста (если есть).
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// Guard проверяет токен входящего запроса и сверяет роль вызывающего
// с требованиями операции. Состояние не изменяет: чистый предикат
// над (токен, операция).
type Guard struct {
	tokens *TokenManager
	logger *slog.Logger
}

func NewGuard(tokens *TokenManager, logger *slog.Logger) *Guard {
	return &Guard{tokens: tokens, logger: logger}
}

// BearerToken извлекает токен из заголовка Authorization.
// Пустая строка — токен отсутствует или заголовок некорректен.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authorize проверяет токен и роль для заданной операции.
// Expired/Invalid/Malformed наружу не различаются — все это
// DecisionUnauthenticated, подробность уходит только в лог.
func (g *Guard) Authorize(tokenString, operation string) (Decision, *Principal) {
	if tokenString == "" {
		return DecisionUnauthenticated, nil
	}

	claims, err := g.tokens.Verify(tokenString)
	if err != nil {
		g.logger.Warn("token rejected", "operation", operation, "reason", err)
		return DecisionUnauthenticated, nil
	}

	p := &Principal{Username: claims.Subject, Role: claims.Role}
	if p.Role == "" {
		p.Role = domain.RoleMember
	}

	allowed, ok := operationRoles[operation]
	if !ok {
		// неизвестная операция закрыта для всех
		g.logger.Error("unknown guarded operation", "operation", operation)
		return DecisionForbidden, p
	}
	for _, role := range allowed {
		if p.Role == role {
			return DecisionAllow, p
		}
	}

	g.logger.Warn("insufficient role", "operation", operation, "username", p.Username, "role", p.Role)
	return DecisionForbidden, p
}
