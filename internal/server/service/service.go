// Package service содержит бизнес-логику справочника пользователей.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_repos.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/config"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users *UsersService
}

// NewServices собирает все сервисы приложения.
// cfg нужен UsersService (правила проверки пользователя).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Users: NewUsersService(repos.Users, cfg.Users),
	}
}

// UsersRepo — репозиторий пользователей.
type UsersRepo interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u models.NewUser) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
