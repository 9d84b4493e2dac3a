package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/models"
)

// printUsers выводит снимок таблицей в порядке, полученном от сервера.
func printUsers(w io.Writer, users []models.UserRecord) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, "no users")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tIDADE\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Age, u.Email)
	}
	return tw.Flush()
}
