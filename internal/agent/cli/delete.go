package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd создаёт CLI-команду для удаления пользователя по ID.
//
// После успешного удаления список запрашивается заново и печатается.
// Если сервер не подтвердил удаление, команда возвращает ошибку
// "deletion failed, record may already be removed".
//
// Пример использования:
//
//	cadastro delete 7a0a4a6a-a7bf-42c0-8cdf-2be8583d180e
func NewDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "delete <id>",
		Short:        "Удалить пользователя",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			v := app.NewView()

			if err := v.RemoveUser(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", id)
			return printUsers(cmd.OutOrStdout(), v.Users())
		},
	}
}
