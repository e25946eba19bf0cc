package present

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Werneck0live/calculadora-energia/internal/estimate"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency formata em reais com exatamente duas casas: "R$ 1.234,50".
// É o único ponto onde valores são arredondados (meio para longe do zero).
func FormatCurrency(v float64) string {
	return "R$ " + formatDecimal(decimal.NewFromFloat(v), 2)
}

// FormatRate mostra a tarifa por kWh com até 5 casas, sem zeros à direita
// além dos centavos: 0.65 -> "R$ 0,65/kWh", 0.65432 -> "R$ 0,65432/kWh".
func FormatRate(v float64) string {
	s := formatDecimal(decimal.NewFromFloat(v), 5)
	whole, frac, _ := strings.Cut(s, ",")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < 2 {
		frac += "0"
	}
	return "R$ " + whole + "," + frac + "/kWh"
}

// FormatKwh: 150 -> "150 kWh", 1234.5 -> "1.234,5 kWh".
func FormatKwh(v float64) string {
	s := formatDecimal(decimal.NewFromFloat(v), 2)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ",")
	return s + " kWh"
}

func formatDecimal(d decimal.Decimal, places int32) string {
	rounded := d.Round(places)
	abs := rounded.Abs()

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	_, frac, _ := strings.Cut(abs.StringFixed(places), ".")
	grouped := printer.Sprintf("%d", abs.IntPart())
	if frac == "" {
		return sign + grouped
	}
	return sign + grouped + "," + frac
}

// Severity é o destaque visual da bandeira.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityNeutral
	SeverityCaution
	SeverityAlert
)

func (s Severity) String() string {
	switch s {
	case SeverityNeutral:
		return "neutral"
	case SeverityCaution:
		return "caution"
	case SeverityAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// ClassifySurchargeTier nunca falha: rótulo desconhecido vira SeverityUnknown.
func ClassifySurchargeTier(label string) Severity {
	return SeverityOf(estimate.ParseTier(label))
}

func SeverityOf(t estimate.Tier) Severity {
	switch t {
	case estimate.TierGreen:
		return SeverityNeutral
	case estimate.TierYellow:
		return SeverityCaution
	case estimate.TierRed, estimate.TierRed1, estimate.TierRed2, estimate.TierScarcity:
		return SeverityAlert
	default:
		return SeverityUnknown
	}
}
