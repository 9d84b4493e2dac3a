// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит адрес сервера справочника пользователей, таймаут запросов
// и режим проверки TLS сертификата; файл размещается в домашней директории пользователя в файле:
//
//	~/.cadastro/config.json
//
// Пакет предоставляет функции для получения пути по умолчанию, загрузки и сохранения
// конфигурации в JSON формате.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultServerURL — адрес сервера, если он не задан ни в файле, ни флагом.
	DefaultServerURL = "http://127.0.0.1:8080"
	// DefaultTimeout — таймаут одного HTTP-запроса.
	DefaultTimeout = 10 * time.Second

	appDir   = ".cadastro"
	fileName = "config.json"
)

// Settings содержит настройки клиента.
//
// TLSVerify включает проверку сертификата сервера для https-адресов.
// По умолчанию выключена: локальный сервер обычно работает с самоподписанным сертификатом.
type Settings struct {
	ServerURL string   `json:"server_url"`
	Timeout   Duration `json:"timeout"`
	TLSVerify bool     `json:"tls_verify"`
}

// Duration — time.Duration, который в JSON хранится строкой ("10s", "1m").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timeout must be a duration string: %w", err)
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	*d = Duration(v)
	return nil
}

// Defaults возвращает настройки по умолчанию.
func Defaults() *Settings {
	return &Settings{
		ServerURL: DefaultServerURL,
		Timeout:   Duration(DefaultTimeout),
	}
}

// ApplyDefaults заполняет пустые поля значениями по умолчанию.
func (s *Settings) ApplyDefaults() {
	if s.ServerURL == "" {
		s.ServerURL = DefaultServerURL
	}
	if s.Timeout <= 0 {
		s.Timeout = Duration(DefaultTimeout)
	}
}

// Dir возвращает директорию клиента в домашней директории пользователя (<home>/.cadastro).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDir), nil
}

// DefaultPath возвращает путь к конфигурационному файлу в домашней директории пользователя.
//
// Формат пути:
//
//	<home>/.cadastro/config.json
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load загружает конфигурацию из указанного файла.
//
// Если файл не существует, возвращает настройки по умолчанию без ошибки.
// Если файл существует, но содержит некорректный JSON, возвращает ошибку.
func Load(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, err
	}

	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	s.ApplyDefaults()
	return &s, nil
}

// Save сохраняет конфигурацию в указанный файл в JSON формате.
//
// При необходимости создаёт директорию назначения с правами 0700.
// Файл конфигурации записывается с правами 0600.
func Save(path string, s *Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
