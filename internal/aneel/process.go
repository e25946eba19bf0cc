package aneel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Werneck0live/calculadora-energia/internal/estimate"
	"github.com/Werneck0live/calculadora-energia/internal/models"
)

var thousand = decimal.NewFromInt(1000)

// ParseValue converte "179,08", "1.234,56", "0.5" ou "N/A" (zero).
func ParseValue(t Text) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(t))
	if s == "" || strings.EqualFold(s, "N/A") {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor %q: %w", string(t), err)
	}
	return d, nil
}

// IsResidential: subgrupo/classe B1, classe residencial ou modalidade convencional.
func IsResidential(r TariffRecord) bool {
	sub := strings.ToUpper(string(r.DscSubGrupo))
	class := strings.ToUpper(string(r.DscClasse))
	mod := strings.ToUpper(string(r.DscModalidadeTarifaria))
	return strings.Contains(sub, "B1") ||
		strings.Contains(class, "B1") ||
		strings.Contains(class, "RESIDENCIAL") ||
		strings.Contains(mod, "CONVENCIONAL")
}

// datas vêm como "2024-04-22" ou "2024-04-22T00:00:00"
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildTable escolhe uma tarifa residencial vigente por UF. Havendo mais
// de uma, vale a de DatFimVigencia mais distante. Saída ordenada por UF.
func BuildTable(records []TariffRecord, now time.Time) []models.Tariff {
	today := dateOf(now)
	byState := map[string]models.Tariff{}

	for _, r := range records {
		if !IsResidential(r) {
			continue
		}

		start, okStart := parseDate(string(r.DatInicioVigencia))
		end, okEnd := parseDate(string(r.DatFimVigencia))
		if !okEnd {
			continue
		}
		if today.After(end) || (okStart && today.Before(start)) {
			continue
		}

		tusd, err := ParseValue(r.VlrTUSD)
		if err != nil {
			continue
		}
		te, err := ParseValue(r.VlrTE)
		if err != nil {
			continue
		}
		if tusd.IsZero() && te.IsZero() {
			continue
		}

		distributor := strings.TrimSpace(string(r.SigAgente))
		uf, ok := StateFor(distributor)
		if !ok {
			continue
		}

		if cur, exists := byState[uf]; exists && !end.After(cur.ValidUntil) {
			continue
		}
		byState[uf] = models.Tariff{
			State:        uf,
			Distributor:  distributor,
			TariffPerKwh: perKwh(tusd.Add(te)),
			TUSD:         perKwh(tusd),
			TE:           perKwh(te),
			ValidUntil:   end,
		}
	}

	out := make([]models.Tariff, 0, len(byState))
	for _, t := range byState {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

// R$/MWh -> R$/kWh com 5 casas
func perKwh(mwh decimal.Decimal) float64 {
	return mwh.Div(thousand).Round(5).InexactFloat64()
}

// LatestFlag pega o acionamento mais recente. O rótulo sai normalizado
// ("Vermelha P1" -> "Vermelha Patamar 1") quando reconhecido.
func LatestFlag(records []FlagRecord) (*models.Flag, bool) {
	var (
		best      FlagRecord
		bestStart string
		found     bool
	)
	for _, r := range records {
		if r.Name() == "" {
			continue
		}
		start := r.Start()
		if !found || start > bestStart {
			best, bestStart, found = r, start, true
		}
	}
	if !found {
		return nil, false
	}

	value, err := ParseValue(best.Value())
	if err != nil || value.IsNegative() {
		return nil, false
	}

	name := best.Name()
	if tier := estimate.ParseTier(name); tier != estimate.TierUnknown {
		name = tier.String()
	}
	// acima de 1 só pode ser R$/MWh; abaixo já está em R$/kWh
	perUnit := value.Round(5).InexactFloat64()
	if value.GreaterThan(decimal.NewFromInt(1)) {
		perUnit = perKwh(value)
	}
	f := &models.Flag{Name: name, ValuePerKwh: perUnit}
	if t, ok := parseDate(bestStart); ok {
		f.ValidFrom = t
		f.ReferenceMonth = ReferenceMonth(t)
	}
	return f, true
}

var months = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// ReferenceMonth formata "Janeiro de 2025".
func ReferenceMonth(t time.Time) string {
	return fmt.Sprintf("%s de %d", months[t.Month()-1], t.Year())
}
