// Package repository содержит доступ к PostgreSQL для справочника пользователей.
//
// SQL собирается squirrel с плейсхолдерами $N, результат сканируется sqlx
// в models.User по тегам db.
package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/models"
	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
)

const (
	usersTable = "usuarios"

	// код ошибки PostgreSQL unique_violation
	uniqueViolation = "23505"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	userColumns = []string{"id", "name", "age", "email", "created_at"}
)

type UsersRepository struct {
	db *sqlx.DB
}

// NewUsersRepository оборачивает *sql.DB (драйвер pgx) в sqlx.
func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: sqlx.NewDb(db, "pgx")}
}

// List возвращает всех пользователей от старых к новым.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From(usersTable).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, serr.ErrInternal
	}

	users := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, serr.ErrInternal
	}
	return users, nil
}

// Create вставляет пользователя и возвращает сохранённую строку.
// Повтор email даёт ErrAlreadyExists.
func (r *UsersRepository) Create(ctx context.Context, u models.NewUser) (models.User, error) {
	query, args, err := psql.
		Insert(usersTable).
		Columns("id", "name", "age", "email").
		Values(uuid.New(), u.Name, u.Age, u.Email).
		Suffix("RETURNING id, name, age, email, created_at").
		ToSql()
	if err != nil {
		return models.User{}, serr.ErrInternal
	}

	var out models.User
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, serr.ErrInternal
	}
	return out, nil
}

// Delete удаляет пользователя по id. Если строки нет — ErrNotFound.
func (r *UsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.
		Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return serr.ErrInternal
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
