package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/calculadora-energia/internal/cep"
)

func newPostalCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cep <texto>",
		Short: "Mostra o CEP como o formulário exibiria (DDDDD-DDD)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatted := cep.Format(strings.Join(args, ""))
			valid := "incompleto"
			if cep.Valid(cep.StripSeparator(formatted)) {
				valid = "completo"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", formatted, valid)
			return err
		},
	}
}
