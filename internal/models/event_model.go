package models

import "time"

const (
	EventTariff = "tarifa"
	EventFlag   = "bandeira"
)

// TariffEvent é publicado no RabbitMQ a cada mudança de tarifa ou bandeira
// e repassado pelo ws para quem acompanha. Estado vazio = evento nacional (bandeira).
type TariffEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"tipo"` // tarifa|bandeira
	State       string    `json:"estado,omitempty"`
	Distributor string    `json:"distribuidora,omitempty"`
	Tariff      float64   `json:"tarifa,omitempty"`
	Previous    *float64  `json:"tarifa_anterior,omitempty"`
	Flag        string    `json:"bandeira,omitempty"`
	FlagValue   float64   `json:"valor_bandeira_kwh,omitempty"`
	Source      string    `json:"origem"` // sync|seed|manual
	At          time.Time `json:"timestamp"`
}

// Matches diz se o evento interessa a quem acompanha o estado uf.
// uf vazio recebe tudo; eventos sem estado vão para todos.
func (e TariffEvent) Matches(uf string) bool {
	return uf == "" || e.State == "" || e.State == uf
}
