package estimate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CalculateResponse é o corpo de sucesso de POST /api/calculate.
type CalculateResponse struct {
	Distribuidora     string         `json:"distribuidora"`
	Estado            string         `json:"estado"`
	Tarifa            float64        `json:"tarifa"`
	Bandeira          string         `json:"bandeira"`
	ValorBandeira     float64        `json:"valor_bandeira"`
	ValorTotal        float64        `json:"valor_total"`
	UltimaAtualizacao string         `json:"ultima_atualizacao_dados"`
	Comparacao        *ComparacaoDTO `json:"comparacao,omitempty"`
}

type ComparacaoDTO struct {
	MaisBarato EstadoTarifaDTO `json:"mais_barato"`
	MaisCaro   EstadoTarifaDTO `json:"mais_caro"`
}

type EstadoTarifaDTO struct {
	Estado string  `json:"estado"`
	Tarifa float64 `json:"tarifa"`
}

// ErrorResponse é o corpo de falha estruturada.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewCalculateResponse monta o corpo de resposta a partir de um Result.
func NewCalculateResponse(r *Result) CalculateResponse {
	resp := CalculateResponse{
		Distribuidora:     r.DistributorName,
		Estado:            r.State,
		Tarifa:            r.TariffPerKwh,
		Bandeira:          r.SurchargeLabel,
		ValorBandeira:     r.SurchargeValue,
		ValorTotal:        r.TotalValue,
		UltimaAtualizacao: r.DataLastUpdated,
	}
	if c := r.Comparison; c != nil {
		resp.Comparacao = &ComparacaoDTO{
			MaisBarato: EstadoTarifaDTO{Estado: c.Cheapest.State, Tarifa: c.Cheapest.TariffPerKwh},
			MaisCaro:   EstadoTarifaDTO{Estado: c.MostExpensive.State, Tarifa: c.MostExpensive.TariffPerKwh},
		}
	}
	return resp
}

// Lado cliente: ponteiros distinguem "omitido" de zero. comparacao fica
// crua porque um bloco de comparação ruim não invalida a estimativa.
type responseBody struct {
	Distribuidora     *string         `json:"distribuidora"`
	Estado            *string         `json:"estado"`
	Tarifa            *float64        `json:"tarifa"`
	Bandeira          *string         `json:"bandeira"`
	ValorBandeira     *float64        `json:"valor_bandeira"`
	ValorTotal        *float64        `json:"valor_total"`
	UltimaAtualizacao *string         `json:"ultima_atualizacao_dados"`
	Comparacao        json.RawMessage `json:"comparacao"`
}

type comparisonBody struct {
	MaisBarato *stateTariffBody `json:"mais_barato"`
	MaisCaro   *stateTariffBody `json:"mais_caro"`
}

type stateTariffBody struct {
	Estado *string  `json:"estado"`
	Tarifa *float64 `json:"tarifa"`
}

var errMissingField = errors.New("campo obrigatório ausente")

// decodeResult valida e converte o corpo uma única vez, na borda.
func decodeResult(raw []byte) (*Result, error) {
	var body responseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	required := []struct {
		name string
		ok   bool
	}{
		{"distribuidora", body.Distribuidora != nil && strings.TrimSpace(*body.Distribuidora) != ""},
		{"estado", body.Estado != nil && strings.TrimSpace(*body.Estado) != ""},
		{"tarifa", body.Tarifa != nil},
		{"bandeira", body.Bandeira != nil},
		{"valor_bandeira", body.ValorBandeira != nil},
		{"valor_total", body.ValorTotal != nil},
	}
	for _, f := range required {
		if !f.ok {
			return nil, fmt.Errorf("%w: %s", errMissingField, f.name)
		}
	}

	r := &Result{
		DistributorName: strings.TrimSpace(*body.Distribuidora),
		State:           strings.TrimSpace(*body.Estado),
		TariffPerKwh:    *body.Tarifa,
		SurchargeLabel:  strings.TrimSpace(*body.Bandeira),
		SurchargeTier:   ParseTier(*body.Bandeira),
		SurchargeValue:  *body.ValorBandeira,
		TotalValue:      *body.ValorTotal,
		Comparison:      decodeComparison(body.Comparacao),
	}
	if body.UltimaAtualizacao != nil {
		r.DataLastUpdated = strings.TrimSpace(*body.UltimaAtualizacao)
	}
	return r, nil
}

// decodeComparison devolve nil se o bloco faltar ou vier incompleto:
// o painel some inteiro em vez de aparecer com buracos.
func decodeComparison(raw json.RawMessage) *Comparison {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var body comparisonBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	cheapest, ok := body.MaisBarato.toStateTariff()
	if !ok {
		return nil
	}
	priciest, ok := body.MaisCaro.toStateTariff()
	if !ok {
		return nil
	}
	return &Comparison{Cheapest: cheapest, MostExpensive: priciest}
}

func (b *stateTariffBody) toStateTariff() (StateTariff, bool) {
	if b == nil || b.Estado == nil || b.Tarifa == nil {
		return StateTariff{}, false
	}
	state := strings.TrimSpace(*b.Estado)
	if state == "" || !nonNegative(*b.Tarifa) {
		return StateTariff{}, false
	}
	return StateTariff{State: state, TariffPerKwh: *b.Tarifa}, true
}
