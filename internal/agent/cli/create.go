package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCreateCmd создаёт CLI-команду для создания пользователя.
//
// Значения флагов отправляются на сервер без обработки: пустые строки,
// пробелы и нечисловой возраст уходят как есть, проверку выполняет сервер.
// После успешного создания список запрашивается заново и печатается.
//
// Пример использования:
//
//	cadastro create --name Bob --age 25 --email b@x.com
func NewCreateCmd(app *App) *cobra.Command {
	var name, age, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать пользователя",
		Long: `Создаёт пользователя через POST /usuarios и выводит обновлённый список.

Пример:
  cadastro create --name Bob --age 25 --email b@x.com
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := app.NewView()

			if err := v.SubmitNew(cmd.Context(), name, age, email); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", name)
			return printUsers(cmd.OutOrStdout(), v.Users())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "user name")
	cmd.Flags().StringVar(&age, "age", "", "user age")
	cmd.Flags().StringVar(&email, "email", "", "user email")

	return cmd
}
