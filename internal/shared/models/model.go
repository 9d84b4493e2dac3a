package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserRecord — плоская модель пользователя, используемая в HTTP API.
//
// Поля:
//   - ID: идентификатор, который назначает сервер (клиент считает его непрозрачным)
//   - Name: имя пользователя
//   - Age: возраст; на клиенте хранится как введённый текст
//   - Email: почта пользователя
type UserRecord struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Age   Age    `json:"age"`
	Email string `json:"email"`
}

// CreateUserRequest — запрос на создание пользователя.
//
// Используется в:
//
//	POST /usuarios
//
// Значения передаются ровно так, как их ввёл пользователь:
// без trim и без приведения типов. Валидирует только сервер.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Age   Age    `json:"age"`
	Email string `json:"email"`
}

// UserID — непрозрачный идентификатор пользователя.
//
// Сервер может прислать его строкой ("6f1c...") или числом (1);
// клиент хранит текстовую форму и отправляет её обратно в пути DELETE.
type UserID string

// UnmarshalJSON декодирует идентификатор из строки или числа.
// null и пустое значение дают пустой ID.
func (id *UserID) UnmarshalJSON(b []byte) error {
	s, err := decodeText(b)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = UserID(s)
	return nil
}

// String возвращает текстовую форму идентификатора.
func (id UserID) String() string {
	return string(id)
}

// Age — возраст в текстовом виде.
//
// На вход принимает и JSON-строку ("25"), и JSON-число (25),
// поэтому клиенту не важно, как сервер хранит возраст.
// Сериализуется всегда строкой.
type Age string

// UnmarshalJSON декодирует возраст из строки, числа или null.
func (a *Age) UnmarshalJSON(b []byte) error {
	s, err := decodeText(b)
	if err != nil {
		return fmt.Errorf("age: %w", err)
	}
	*a = Age(s)
	return nil
}

// decodeText читает JSON-строку или JSON-число как текст.
func decodeText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", string(b))
	}
	return n.String(), nil
}

// Int возвращает возраст как целое число.
func (a Age) Int() (int, error) {
	return strconv.Atoi(string(a))
}

// String возвращает возраст как текст.
func (a Age) String() string {
	return string(a)
}
