package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/middleware"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
)

// Статус по умолчанию и размер
func TestResponseWriter_Write_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := middleware.NewResponseWriter(rr)

	body := []byte("hello")
	n, err := w.Write(body)

	require.NoError(t, err)
	require.Equal(t, len(body), n)
	require.Equal(t, http.StatusOK, w.Status())
	require.Equal(t, len(body), w.Size())
}

// повторный WriteHeader не меняет записанный статус
func TestResponseWriter_KeepsFirstStatus(t *testing.T) {
	w := middleware.NewResponseWriter(httptest.NewRecorder())

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	require.Equal(t, http.StatusCreated, w.Status())
	require.Zero(t, w.Size())
}

func TestResponseWriter_NothingWritten_IsOK(t *testing.T) {
	w := middleware.NewResponseWriter(httptest.NewRecorder())

	require.Equal(t, http.StatusOK, w.Status())
}

// вспомогательная функция
func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func observedLogger() (*logger.HTTPLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return &logger.HTTPLogger{Logger: zap.New(core)}, logs
}

// проверка корректного прохода статуса и тела через мидлу
func TestLoggerMiddleware(t *testing.T) {
	log, logs := observedLogger()
	mw := middleware.LoggerMiddleware(log)

	handler := mw(testHandler(http.StatusTeapot, "tea"))

	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, "tea", rr.Body.String())

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/usuarios", fields["uri"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.EqualValues(t, 3, fields["response_size"])
}

// хендлер без записи: статус 200
func TestLoggerMiddleware_EmptyHandler(t *testing.T) {
	log, logs := observedLogger()
	handler := middleware.LoggerMiddleware(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/usuarios/1", nil))

	require.Len(t, logs.All(), 1)
	require.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
}

func TestLoggerMiddleware_NilLogger(t *testing.T) {
	handler := middleware.LoggerMiddleware(nil)(testHandler(http.StatusNoContent, ""))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/usuarios/1", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
}
