package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/tui"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/view"
)

// ErrNotTerminal возвращается командой ui, если stdin не является терминалом.
var ErrNotTerminal = errors.New("ui requires an interactive terminal")

// NewUICmd создаёт CLI-команду интерактивного экрана.
//
// Экран показывает форму создания и список карточек пользователей.
// Уведомления об ошибках выводятся под формой.
//
// Пример использования:
//
//	cadastro ui
func NewUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "ui",
		Short:        "Интерактивный экран: форма и список пользователей",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTerminal(int(os.Stdin.Fd())) {
				return ErrNotTerminal
			}

			notices := tui.NewNoticeLog(3)
			v := app.NewView(view.WithNotifier(notices))

			return RunProgram(cmd.Context(), v, notices)
		},
	}
}
