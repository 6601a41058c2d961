package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/auth"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// RequireOperation — middleware проверки доступа: извлекает bearer-токен,
// проверяет его и роль вызывающего для заданной операции. При успехе
// principal попадает в контекст запроса.
func RequireOperation(guard *auth.Guard, operation string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, principal := guard.Authorize(auth.BearerToken(r), operation)

			switch decision {
			case auth.DecisionAllow:
				next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
			case auth.DecisionForbidden:
				respondWithMessage(w, http.StatusForbidden, "Error: Access is denied!", logger)
			default:
				respondWithMessage(w, http.StatusUnauthorized, "Error: Unauthorized!", logger)
			}
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
