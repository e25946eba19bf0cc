package estimate

import "math"

// tolerância relativa entre valor_total e tarifa*consumo + bandeira
const tolerance = 1e-6

// Breakdown é a decomposição da conta. Nada é arredondado aqui;
// o arredondamento para centavos acontece só na formatação.
type Breakdown struct {
	Energy    float64
	Surcharge float64
	Total     float64
}

// Compute calcula energia = tarifa * consumo e total = energia + bandeira.
// Tarifa ou bandeira negativas/não finitas vindas da base são erro de
// integridade, nunca zeradas.
func Compute(tariffPerKwh, surchargeValue, consumptionKwh float64) (Breakdown, error) {
	if !nonNegative(tariffPerKwh) {
		return Breakdown{}, integrity("tarifa inválida: %v", tariffPerKwh)
	}
	if !nonNegative(surchargeValue) {
		return Breakdown{}, integrity("valor da bandeira inválido: %v", surchargeValue)
	}
	if err := checkConsumption(consumptionKwh); err != nil {
		return Breakdown{}, err
	}

	energy := tariffPerKwh * consumptionKwh
	total := energy + surchargeValue
	if !nonNegative(energy) || !nonNegative(total) {
		return Breakdown{}, integrity("resultado fora do intervalo: energia=%v total=%v", energy, total)
	}
	return Breakdown{
		Energy:    energy,
		Surcharge: surchargeValue,
		Total:     total,
	}, nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func approxEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tolerance*scale
}
