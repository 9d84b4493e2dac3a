// Package http реализует маршрутизацию HTTP-слоя сервера справочника пользователей.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - восстановление после паники в хендлерах.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/api"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер регистрирует:
//   - middleware логирования и recover для всех запросов;
//   - swagger UI по /swagger/*;
//   - коллекцию /usuarios (GET, POST) и DELETE /usuarios/{id}.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/usuarios", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	return r
}
