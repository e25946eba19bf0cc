package present

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Werneck0live/calculadora-energia/internal/estimate"
)

var errNoResult = errors.New("present: nil result")

// Label é o marcador curto exibido ao lado da bandeira.
func (s Severity) Label() string {
	switch s {
	case SeverityNeutral:
		return "sem acréscimo"
	case SeverityCaution:
		return "atenção"
	case SeverityAlert:
		return "alerta"
	default:
		return "não classificada"
	}
}

// Render escreve o painel de resultado. A energia vem sempre de
// Result.EnergyValue; o painel de comparação só aparece se veio completo.
func Render(w io.Writer, r *estimate.Result, consumptionKwh float64) error {
	if r == nil {
		return errNoResult
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Distribuidora:\t%s (%s)\n", r.DistributorName, r.State)
	fmt.Fprintf(tw, "Tarifa:\t%s\n", FormatRate(r.TariffPerKwh))
	fmt.Fprintf(tw, "Consumo:\t%s\n", FormatKwh(consumptionKwh))
	fmt.Fprintf(tw, "Bandeira:\t%s [%s]\n", r.SurchargeLabel, SeverityOf(r.SurchargeTier).Label())
	fmt.Fprintf(tw, "Energia:\t%s\n", FormatCurrency(r.EnergyValue()))
	fmt.Fprintf(tw, "Valor da bandeira:\t%s\n", FormatCurrency(r.SurchargeValue))
	fmt.Fprintf(tw, "Total estimado:\t%s\n", FormatCurrency(r.TotalValue))
	if err := tw.Flush(); err != nil {
		return err
	}

	if c := r.Comparison; c != nil {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Comparação nacional")
		fmt.Fprintf(tw, "  Mais barato:\t%s\t%s\n", c.Cheapest.State, FormatRate(c.Cheapest.TariffPerKwh))
		fmt.Fprintf(tw, "  Mais caro:\t%s\t%s\n", c.MostExpensive.State, FormatRate(c.MostExpensive.TariffPerKwh))
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if r.DataLastUpdated != "" {
		fmt.Fprintf(w, "\nÚltima atualização dos dados: %s\n", r.DataLastUpdated)
	}
	_, err := fmt.Fprintln(w, "Impostos (ICMS, PIS/COFINS) e iluminação pública não inclusos.")
	return err
}

// RenderError escreve a mensagem exibível de err.
func RenderError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "Erro: %s\n", estimate.Message(err))
	return werr
}
