package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/Werneck0live/calculadora-energia/internal/broker"
	"github.com/Werneck0live/calculadora-energia/internal/models"
	"github.com/Werneck0live/calculadora-energia/internal/present"
)

func newWatchCmd(opts *options, defaultURL string) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "acompanhar",
		Short: "Acompanha mudanças de tarifa e bandeira em tempo real",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := watchURL(opts.wsURL, state)
			if err != nil {
				return err
			}
			return watch(cmd.Context(), target, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&state, "estado", "", "UF a acompanhar (todas se vazio)")
	cmd.Flags().StringVar(&opts.wsURL, "ws-url", defaultURL, "endereço do feed de tarifas")
	return cmd
}

func watchURL(base, state string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("ws-url inválida: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("ws-url deve usar ws:// ou wss://, recebido %q", base)
	}
	if state = strings.ToUpper(strings.TrimSpace(state)); state != "" {
		q := u.Query()
		q.Set("estado", state)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

type subscribed struct {
	Status string `json:"status"`
	State  string `json:"estado"`
}

func watch(ctx context.Context, target string, out io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("conectar em %s: %w", target, err)
	}
	defer conn.Close()

	// Ctrl+C fecha a conexão e destrava o ReadMessage
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("conexão encerrada: %w", err)
		}

		ev, err := broker.DecodeEvent(msg)
		if err == nil {
			fmt.Fprintln(out, FormatEvent(ev))
			continue
		}
		var s subscribed
		if json.Unmarshal(msg, &s) == nil && s.Status != "" {
			scope := s.State
			if scope == "" {
				scope = "todas as UFs"
			}
			fmt.Fprintf(out, "Acompanhando %s. Ctrl+C para sair.\n", scope)
		}
	}
}

// FormatEvent descreve um evento numa linha.
func FormatEvent(ev models.TariffEvent) string {
	at := ""
	if !ev.At.IsZero() {
		at = "[" + ev.At.Local().Format("02/01 15:04") + "] "
	}

	switch ev.Type {
	case models.EventFlag:
		sev := present.ClassifySurchargeTier(ev.Flag)
		return fmt.Sprintf("%sBandeira %s: %s [%s]", at, ev.Flag, present.FormatRate(ev.FlagValue), sev.Label())
	default:
		line := fmt.Sprintf("%s%s %s: %s", at, ev.State, ev.Distributor, present.FormatRate(ev.Tariff))
		if ev.Previous != nil {
			line += " (antes " + present.FormatRate(*ev.Previous) + ")"
		}
		return line
	}
}
