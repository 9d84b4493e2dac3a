package api

import (
	"context"
	"fmt"
	"net/url"

	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// UsersPath — путь коллекции пользователей на сервере.
const UsersPath = "/usuarios"

// ListUsers загружает всех пользователей с сервера.
//
// Выполняет запрос:
//
//	GET /usuarios
//
// Порядок записей сохраняется таким, каким его вернул сервер.
// Если сервер вернул запись без id, возвращается ошибка serr.ErrEmptyID:
// это помогает быстро поймать рассинхрон JSON-модели между сервером и клиентом.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	var resp []models.UserRecord
	if err := c.GetJSON(ctx, UsersPath, &resp); err != nil {
		return nil, err
	}
	for i, u := range resp {
		if u.ID == "" {
			return nil, fmt.Errorf("list users: record at index %d: %w", i, serr.ErrEmptyID)
		}
	}
	if resp == nil {
		resp = []models.UserRecord{}
	}
	return resp, nil
}

// CreateUser создаёт пользователя на сервере.
//
// Выполняет запрос:
//
//	POST /usuarios
//
// Тело запроса — req как есть. Возвращает созданную запись
// (если сервер её прислал) либо zero-value.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserRecord, error) {
	var resp models.UserRecord
	err := c.PostJSON(ctx, UsersPath, req, &resp)
	return resp, err
}

// DeleteUser удаляет пользователя на сервере по ID.
//
// Выполняет запрос:
//
//	DELETE /usuarios/{id}
//
// Тело ответа не читается. Если записи нет, сервер отвечает 404,
// и ошибка распознаётся через errors.Is(err, serr.ErrNotFound).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.DeleteJSON(ctx, UsersPath+"/"+url.PathEscape(id), nil)
}
