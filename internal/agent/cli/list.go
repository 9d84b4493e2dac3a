package cli

import (
	"github.com/spf13/cobra"
)

// NewListCmd создаёт CLI-команду для вывода списка пользователей.
//
// Команда выполняет GET /usuarios и печатает записи в порядке сервера.
//
// Пример использования:
//
//	cadastro list
func NewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "Показать список пользователей",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := app.NewView()

			users, err := v.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users)
		},
	}
}
