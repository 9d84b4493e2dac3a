// HTTP-хендлеры справочника пользователей /usuarios
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/models"
	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// CreateUserRequest описывает тело запроса создания пользователя.
// age принимается и строкой, и числом.
type CreateUserRequest = shared.CreateUserRequest

// UserResponse описывает пользователя в ответах API.
type UserResponse struct {
	ID        string    `json:"id" example:"7a0a4a6a-a7bf-42c0-8cdf-2be8583d180e"`
	Name      string    `json:"name" example:"Bob"`
	Age       int       `json:"age" example:"25"`
	Email     string    `json:"email" example:"b@x.com"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Age:       u.Age,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns all users, oldest first. Empty directory gives [].
// @Tags         usuarios
// @Produce      json
// @Success      200 {array}  UserResponse
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /usuarios [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.Users.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list users failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateUser создаёт пользователя.
//
// Ответы:
//   - 201 Created: пользователь создан;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Create user
// @Description  Validates name, age (integer 0..150) and email, then stores the user.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Create user request"
// @Success      201 {object} UserResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} ErrorResponse "Email already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /usuarios [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	u, err := h.Svc.Users.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Errorw("create user failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// DeleteUser удаляет пользователя по id.
//
// @Summary      Delete user
// @Description  Deletes the user. Unknown or malformed id gives 404.
// @Tags         usuarios
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /usuarios/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Svc.Users.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("delete user failed", "error", err, "id", id)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
