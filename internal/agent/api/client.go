// Package api содержит HTTP-клиент для взаимодействия с сервером справочника пользователей.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (GET/POST/DELETE).
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError со статусом и текстом тела ответа
//     (если тело пустое — используется res.Status).
//   - Каждый запрос оборачивается в span OpenTelemetry.
//
// ВНИМАНИЕ: по умолчанию NewClient включает InsecureSkipVerify=true (TLS сертификат не проверяется).
// Это допустимо только для разработки и локального окружения. Для production используйте WithTLSVerify
// (в CLI — настройка "tls_verify": true).
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
)

const tracerName = "github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/api"

// DefaultTimeout — таймаут http.Client по умолчанию.
const DefaultTimeout = 10 * time.Second

// Client реализует HTTP-клиент для общения с сервером.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт, TLS).
//   - tracer: трейсер OpenTelemetry для span'ов запросов.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задаёт таймаут на один HTTP-запрос.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTLSVerify включает проверку TLS сертификата сервера.
func WithTLSVerify() Option {
	return func(c *Client) {
		c.http.Transport = http.DefaultTransport
	}
}

// WithHTTPClient подменяет http.Client целиком (например, для тестов).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:3000").
//   - opts: дополнительные настройки (таймаут, TLS, http.Client).
//
// ВНИМАНИЕ: по умолчанию InsecureSkipVerify=true отключает проверку сертификата.
func NewClient(baseURL string, opts ...Option) *Client {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // только для dev
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: tr,
		},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает нормализованный базовый адрес сервера.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError — ошибка, которую вернул сервер (ответ не 2xx).
//
// Message содержит текст тела ответа. Если сервер ответил JSON вида
// {"error":"..."}, в Message попадает только значение поля error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap позволяет сравнивать APIError с доменными ошибками через errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return serr.ErrInvalidInput
	case http.StatusNotFound:
		return serr.ErrNotFound
	case http.StatusConflict:
		return serr.ErrAlreadyExists
	default:
		return serr.ErrUnexpectedError
	}
}

// readAPIErrorBody читает тело ответа сервера и возвращает *APIError.
//
// Используется в случае HTTP-ошибок (не 2xx).
func readAPIErrorBody(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)
	msg := strings.TrimSpace(string(raw))

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = res.Status
	}
	return &APIError{StatusCode: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil — функция ничего не делает и возвращает nil.
// Если тело ответа пустое и json.Decoder вернул io.EOF, это НЕ ошибка.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do выполняет запрос, общий для всех методов.
//
// Заголовки:
//   - всегда: Accept: application/json
//   - если req != nil: Content-Type: application/json
//
// Обработка ответа:
//   - 204 No Content: успех без попытки декодирования тела
//   - прочие 2xx: декодирует JSON в resp (если resp != nil); EOF не ошибка
//   - не 2xx: возвращает *APIError
func (c *Client) do(ctx context.Context, method, path string, req any, resp any) (err error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIErrorBody(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := decodeJSONOrOK(res.Body, resp); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// GetJSON выполняет GET-запрос к серверу и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(ctx context.Context, path string, resp any) error {
	return c.do(ctx, http.MethodGet, path, nil, resp)
}

// PostJSON выполняет POST-запрос к серверу, сериализуя req в JSON.
// Если req == nil, тело не отправляется и Content-Type не устанавливается.
func (c *Client) PostJSON(ctx context.Context, path string, req any, resp any) error {
	return c.do(ctx, http.MethodPost, path, req, resp)
}

// DeleteJSON выполняет DELETE-запрос к серверу и (опционально) декодирует JSON-ответ.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any) error {
	return c.do(ctx, http.MethodDelete, path, nil, resp)
}
