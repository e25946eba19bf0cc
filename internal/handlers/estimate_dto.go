package handlers

// somente os campos do contrato; ponteiros distinguem "omitido" de zero
type CalculateDTO struct {
	CEP     *string  `json:"cep"`
	Consumo *float64 `json:"consumo"`
}
