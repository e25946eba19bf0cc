// Package cli implementa o calc, cliente de linha de comando da calculadora.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/calculadora-energia/internal/config"
	"github.com/Werneck0live/calculadora-energia/internal/estimate"
)

// errReported: a mensagem já foi exibida, só falta o status de saída.
var errReported = errors.New("reported")

type options struct {
	apiURL   string
	wsURL    string
	timeout  time.Duration
	logLevel string
	log      *slog.Logger
}

func (o *options) client() *estimate.Client {
	return estimate.NewClient(o.apiURL,
		estimate.WithTimeout(o.timeout),
		estimate.WithLogger(o.log),
	)
}

// NewRootCmd monta o calc com os defaults vindos do ambiente (CALC_*).
func NewRootCmd(version string) *cobra.Command {
	cfg := config.LoadClientConfig()
	opts := &options{log: slog.Default()}

	cmd := &cobra.Command{
		Use:           "calc",
		Short:         "estimativa da conta de luz residencial",
		Version:       version,
		Example:       rootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.log = config.InitTextLogger(cmd.ErrOrStderr(), config.ParseLevel(opts.logLevel))
			if opts.timeout <= 0 {
				return fmt.Errorf("timeout deve ser positivo, recebido %s", opts.timeout)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.APIURL, "endereço base da API")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Timeout, "tempo máximo de cada consulta")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")

	cmd.AddCommand(
		newEstimateCmd(opts),
		newInteractiveCmd(opts),
		newPostalCodeCmd(),
		newWatchCmd(opts, cfg.WSURL),
	)
	return cmd
}

const rootExample = `  # Estimativa direta
  calc estimar --cep 01310-100 --consumo 150

  # Resposta crua em JSON
  calc estimar --cep 01310100 --consumo 150 --json

  # Formulário no terminal
  calc interativo

  # Acompanhar mudanças de tarifa em SP
  calc acompanhar --estado SP`

// Execute roda o calc e devolve o status de saída.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Erro: %v\n", err)
		}
		return 1
	}
	return 0
}
