package service

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/config"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/models"
	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// UsersService реализует операции справочника пользователей.
//
// Сервер — единственное место, где проверяются данные пользователя:
// клиент отправляет поля формы как есть.
type UsersService struct {
	users UsersRepo

	minAge     int
	maxAge     int
	maxNameLen int
}

// NewUsersService создаёт UsersService с правилами проверки из конфига.
func NewUsersService(users UsersRepo, cfg config.UsersConfig) *UsersService {
	return &UsersService{
		users:      users,
		minAge:     cfg.MinAge,
		maxAge:     cfg.MaxAge,
		maxNameLen: cfg.MaxNameLen,
	}
}

// List возвращает всех пользователей в порядке создания.
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Create проверяет запрос и создаёт пользователя.
//
// Валидация:
//   - name обязателен (после trim) и не длиннее max_name_len символов
//   - age — целое число в диапазоне [min_age, max_age]
//   - email — один адрес без отображаемого имени
//
// Возвращает ErrInvalidInput при некорректных данных
// или ErrAlreadyExists если email уже занят.
func (s *UsersService) Create(ctx context.Context, req shared.CreateUserRequest) (models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > s.maxNameLen {
		return models.User{}, serr.ErrInvalidInput
	}

	age, err := strconv.Atoi(strings.TrimSpace(req.Age.String()))
	if err != nil || age < s.minAge || age > s.maxAge {
		return models.User{}, serr.ErrInvalidInput
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		return models.User{}, serr.ErrInvalidInput
	}

	return s.users.Create(ctx, models.NewUser{
		Name:  name,
		Age:   age,
		Email: email,
	})
}

// Delete удаляет пользователя. Некорректный id неотличим от несуществующего: ErrNotFound.
func (s *UsersService) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return serr.ErrNotFound
	}
	return s.users.Delete(ctx, id)
}

// validEmail принимает только "голый" адрес: "Bob <b@x.com>" не пройдёт.
func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && addr.Name == ""
}
