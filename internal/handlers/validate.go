package handlers

import (
	"errors"

	"github.com/Werneck0live/calculadora-energia/internal/cep"
	"github.com/Werneck0live/calculadora-energia/internal/estimate"
)

var errMissingFields = errors.New("CEP e consumo são obrigatórios")

// validateCalculateDTO aplica as mesmas regras do cliente. O CEP pode vir
// com o hífen.
func validateCalculateDTO(d CalculateDTO) (estimate.Request, error) {
	if d.CEP == nil || d.Consumo == nil {
		return estimate.Request{}, errMissingFields
	}
	req := estimate.Request{
		PostalCode:     cep.StripSeparator(*d.CEP),
		ConsumptionKwh: *d.Consumo,
	}
	if err := req.Validate(); err != nil {
		return estimate.Request{}, err
	}
	return req, nil
}
