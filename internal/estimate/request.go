package estimate

import (
	"math"
	"strconv"
	"strings"

	"github.com/Werneck0live/calculadora-energia/internal/cep"
)

// Request é o corpo enviado ao endpoint de cálculo. PostalCode vai sempre só com dígitos.
type Request struct {
	PostalCode     string  `json:"cep"`
	ConsumptionKwh float64 `json:"consumo"`
}

// NewRequest valida a entrada crua do formulário e monta a Request.
// Nenhuma Request inválida sai daqui.
func NewRequest(rawPostalCode, rawConsumption string) (Request, error) {
	pc := cep.StripSeparator(rawPostalCode)
	if !cep.Valid(pc) {
		return Request{}, invalidPostalCode()
	}
	kwh, err := ParseConsumption(rawConsumption)
	if err != nil {
		return Request{}, err
	}
	return Request{PostalCode: pc, ConsumptionKwh: kwh}, nil
}

// Validate reaplica as regras sobre uma Request já montada (ex.: vinda de JSON).
func (r Request) Validate() error {
	if !cep.Valid(r.PostalCode) {
		return invalidPostalCode()
	}
	return checkConsumption(r.ConsumptionKwh)
}

// ParseConsumption aceita "150", "150.5" e "150,5".
func ParseConsumption(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalidConsumption("Informe o consumo em kWh", nil)
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidConsumption("Consumo deve ser um número", err)
	}
	if err := checkConsumption(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkConsumption(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidConsumption("Consumo deve ser um número", nil)
	}
	if v < 0 {
		return invalidConsumption("Consumo não pode ser negativo", nil)
	}
	return nil
}
