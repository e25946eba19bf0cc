package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/calculadora-energia/internal/estimate"
	"github.com/Werneck0live/calculadora-energia/internal/present"
)

func newInteractiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "interativo",
		Short: "Formulário linha a linha: CEP, consumo, resultado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := estimate.NewSession(opts.client(), opts.log)
			return runInteractive(cmd, s)
		},
	}
}

func runInteractive(cmd *cobra.Command, s *estimate.Session) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	ask := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !in.Scan() {
			return "", false
		}
		return strings.TrimSpace(in.Text()), true
	}

	for {
		pc, ok := ask("CEP: ")
		if !ok {
			break
		}
		if formatted := s.SetPostalCode(pc); formatted != pc {
			fmt.Fprintf(out, "  -> %s\n", formatted)
		}

		kwh, ok := ask("Consumo mensal (kWh): ")
		if !ok {
			break
		}
		s.SetConsumption(kwh)

		fmt.Fprintln(out, "Calculando...")
		res, err := s.Submit(cmd.Context())
		fmt.Fprintln(out)
		if err != nil {
			_ = present.RenderError(out, err)
		} else {
			// Submit só dá certo com consumo válido
			v, _ := estimate.ParseConsumption(kwh)
			if err := present.Render(out, res, v); err != nil {
				return err
			}
		}
		fmt.Fprintln(out)

		again, ok := ask("Nova consulta? (s/N): ")
		if !ok || !strings.EqualFold(again, "s") {
			break
		}
	}
	fmt.Fprintln(out)
	return in.Err()
}
