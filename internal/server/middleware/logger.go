// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
)

// ResponseWriter запоминает статус и размер ответа для лога.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

// NewResponseWriter оборачивает w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader фиксирует первый записанный статус.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Unwrap нужен http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Status возвращает статус ответа; 200, если обработчик ничего не записал.
func (w *ResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Size возвращает число записанных байт тела.
func (w *ResponseWriter) Size() int {
	return w.size
}

// LoggerMiddleware пишет в loggerHTTP метод, uri, статус, размер ответа и длительность.
func LoggerMiddleware(loggerHTTP *logger.HTTPLogger) func(http.Handler) http.Handler {
	if loggerHTTP == nil {
		loggerHTTP = logger.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wr := NewResponseWriter(w)
			next.ServeHTTP(wr, r)

			duration := time.Since(start).Seconds() * 1000
			loggerHTTP.LogRequest(r.Method, r.RequestURI, wr.Status(), wr.Size(), duration)
		})
	}
}
