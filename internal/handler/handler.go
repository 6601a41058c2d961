package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/TasksAPI/internal/auth"
	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithMessage — отправляет JSON-ответ вида {"message": ...}.
func respondWithMessage(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"message": message}, logger)
}

// TaskHandler — обработчик HTTP-запросов для работы с задачами.
type TaskHandler struct {
	taskUseCase usecase.TaskUseCase
	logger      *slog.Logger
}

// NewTaskHandler создаёт новый экземпляр TaskHandler.
func NewTaskHandler(uc usecase.TaskUseCase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUseCase: uc, logger: logger}
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func taskIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListTasks — возвращает все задачи.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskUseCase.ListTasks(r.Context())
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err)
		respondWithMessage(w, http.StatusInternalServerError, "Error: Could not fetch tasks!", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks, h.logger)
}

// CreateTask — создает новую задачу.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid task payload", "error", err)
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid request body!", h.logger)
		return
	}

	task, err := h.taskUseCase.CreateTask(r.Context(), &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.logger.Error("failed to create task", "error", err)
		respondWithMessage(w, http.StatusInternalServerError, "Error: Could not create task!", h.logger)
		return
	}

	h.logger.Info("task created", "id", task.ID)
	respondWithJSON(w, http.StatusOK, task, h.logger)
}

// GetTask — возвращает задачу по ID.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromURL(r)
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid task id!", h.logger)
		return
	}

	task, err := h.taskUseCase.GetTask(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get task", "id", id, "error", err)
		respondWithMessage(w, http.StatusInternalServerError, "Error: Could not fetch task!", h.logger)
		return
	}
	if task == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, task, h.logger)
}

// UpdateTask — обновляет title/description/completed существующей задачи.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromURL(r)
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid task id!", h.logger)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid task payload", "id", id, "error", err)
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid request body!", h.logger)
		return
	}

	task, err := h.taskUseCase.UpdateTask(r.Context(), id, usecase.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.logger.Error("failed to update task", "id", id, "error", err)
		respondWithMessage(w, http.StatusInternalServerError, "Error: Could not update task!", h.logger)
		return
	}
	if task == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, task, h.logger)
}

// DeleteTask — удаляет задачу по ID.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromURL(r)
	if err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Error: Invalid task id!", h.logger)
		return
	}

	deleted, err := h.taskUseCase.DeleteTask(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete task", "id", id, "error", err)
		respondWithMessage(w, http.StatusInternalServerError, "Error: Could not delete task!", h.logger)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.logger.Info("task deleted", "id", id, "by", p.Username)
	} else {
		h.logger.Info("task deleted", "id", id)
	}
	w.WriteHeader(http.StatusOK)
}
