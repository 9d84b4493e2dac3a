// Package cli реализует командный интерфейс (CLI) клиента справочника пользователей.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных настроек (адрес сервера, таймаут) из конфигурационного файла;
//   - выполнение команд через view.UserListView и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/api"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/config"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/view"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ServerURL — базовый URL сервера справочника (например, "http://127.0.0.1:8080").
	// Флаг --server имеет приоритет над значением из файла настроек.
	ServerURL string

	// SettingsPath — путь к файлу настроек.
	SettingsPath string
	// Settings — загруженные настройки (таймаут, tls_verify).
	// Может быть nil, если загрузка не выполнялась.
	Settings *config.Settings

	// Log — файловый логгер клиента. nil означает "не логировать".
	Log *logger.HTTPLogger
}

// timeout возвращает таймаут запросов из настроек или значение по умолчанию.
func (app *App) timeout() time.Duration {
	if app.Settings == nil || app.Settings.Timeout <= 0 {
		return api.DefaultTimeout
	}
	return time.Duration(app.Settings.Timeout)
}

// NewView собирает UserListView поверх HTTP-клиента с параметрами приложения.
func (app *App) NewView(opts ...view.Option) *view.UserListView {
	clientOpts := []api.Option{api.WithTimeout(app.timeout())}
	if app.Settings != nil && app.Settings.TLSVerify {
		clientOpts = append(clientOpts, api.WithTLSVerify())
	}
	c := NewAPIClient(app.ServerURL, clientOpts...)

	base := []view.Option{view.WithLogger(app.Log)}
	return view.New(c, append(base, opts...)...)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE загружаются настройки и создаётся файловый логгер.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "cadastro",
		Short: "Cadastro CLI — клиент справочника пользователей (/usuarios)",
		Long: `Cadastro CLI.

Команды:
  list      Показать список пользователей
  create    Создать пользователя
  delete    Удалить пользователя по ID
  ui        Интерактивный экран (форма + список)
  version   Версия и дата сборки

Примеры:

Список:
  cadastro list

Создание (значения передаются серверу как есть, проверяет сервер):
  cadastro create --name Bob --age 25 --email b@x.com

Удаление:
  cadastro delete <id>

Другой сервер:
  cadastro --server http://localhost:8080 list
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.SettingsPath = p

			settings, err := config.Load(app.SettingsPath)
			if err != nil {
				return fmt.Errorf("load settings %s: %w", app.SettingsPath, err)
			}
			app.Settings = settings

			if !cmd.Flags().Changed("server") {
				app.ServerURL = settings.ServerURL
			}

			if app.Log == nil {
				app.Log = NewLogger(filepath.Dir(p))
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", config.DefaultServerURL, "server base URL")

	cmd.AddCommand(NewListCmd(app))
	cmd.AddCommand(NewCreateCmd(app))
	cmd.AddCommand(NewDeleteCmd(app))
	cmd.AddCommand(NewUICmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// Контекст команды отменяется по SIGINT/SIGTERM. При ошибке выполнения команды
// сообщение выводится в stderr, после чего процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(buildVersion, buildDate).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
