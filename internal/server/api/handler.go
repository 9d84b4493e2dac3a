// Package api реализует HTTP-слой сервера справочника пользователей.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/service"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes — лимит тела запроса, если он не задан в конфиге.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - MaxBodyBytes: лимит размера тела POST-запросов.
type Handler struct {
	Svc          *service.Services
	Log          *logger.HTTPLogger
	MaxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger) *Handler {
	return &Handler{
		Svc:          svc,
		Log:          log,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// writeJSON пишет v с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
