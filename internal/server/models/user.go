// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — строка таблицы usuarios.
type User struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Age       int       `db:"age"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// NewUser — проверенные данные для вставки.
type NewUser struct {
	Name  string
	Age   int
	Email string
}
