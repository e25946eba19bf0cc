package estimate

import "math"

// StateTariff é uma linha da tabela nacional usada na comparação.
type StateTariff struct {
	State        string
	TariffPerKwh float64
}

// Comparison traz o estado mais barato e o mais caro da tabela completa.
type Comparison struct {
	Cheapest      StateTariff
	MostExpensive StateTariff
}

// Result é a estimativa recebida. Imutável depois de decodificada.
type Result struct {
	DistributorName string
	State           string
	TariffPerKwh    float64
	SurchargeLabel  string
	SurchargeTier   Tier
	SurchargeValue  float64
	TotalValue      float64
	DataLastUpdated string
	Comparison      *Comparison
}

// EnergyValue é sempre derivado do total, nunca recalculado à parte.
func (r *Result) EnergyValue() float64 {
	return r.TotalValue - r.SurchargeValue
}

// Check confere o resultado contra o consumo pedido:
// valor_total deve bater com tarifa*consumo + bandeira.
func (r *Result) Check(consumptionKwh float64) error {
	b, err := Compute(r.TariffPerKwh, r.SurchargeValue, consumptionKwh)
	if err != nil {
		return err
	}
	if math.IsNaN(r.TotalValue) || math.IsInf(r.TotalValue, 0) || !approxEqual(r.TotalValue, b.Total) {
		return integrity("valor_total %v diverge de tarifa*consumo+bandeira %v", r.TotalValue, b.Total)
	}
	return nil
}
