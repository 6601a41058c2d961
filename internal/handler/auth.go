package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// Тексты сообщений — часть наблюдаемого контракта API,
// менять их нельзя без изменения клиентов.
const (
	msgUsernameTaken      = "Error: Username is already taken!"
	msgEmailTaken         = "Error: Email is already in use!"
	msgInvalidCredentials = "Error: Invalid username or password!"
	msgUserRegistered     = "User registered successfully!"
)

// AuthHandler — обработчик HTTP-запросов регистрации и входа.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authUseCase: uc, logger: logger}
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// SignIn — проверяет учетные данные и возвращает токен доступа.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid sign-in payload", "error", err)
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid request body!", h.logger)
		return
	}

	result, err := h.authUseCase.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondWithMessage(w, http.StatusUnauthorized, msgInvalidCredentials, h.logger)
			return
		}
		h.logger.Error("sign-in failed", "error", err)
		respondWithMessage(w, http.StatusInternalServerError, "Error: Could not sign in!", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, signInResponse{
		AccessToken: result.AccessToken,
		ID:          result.ID,
		Username:    result.Username,
		Email:       result.Email,
		Role:        result.Role,
	}, h.logger)
}

// SignUp — регистрирует нового пользователя.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid sign-up payload", "error", err)
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid request body!", h.logger)
		return
	}

	if err := h.authUseCase.SignUp(r.Context(), req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			respondWithMessage(w, http.StatusBadRequest, msgUsernameTaken, h.logger)
		case errors.Is(err, usecase.ErrEmailTaken):
			respondWithMessage(w, http.StatusBadRequest, msgEmailTaken, h.logger)
		default:
			h.logger.Error("sign-up failed", "error", err)
			respondWithMessage(w, http.StatusInternalServerError, "Error: Could not register user!", h.logger)
		}
		return
	}

	respondWithMessage(w, http.StatusOK, msgUserRegistered, h.logger)
}
