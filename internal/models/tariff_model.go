package models

import "time"

// Tariff é a tarifa residencial (B1) vigente de um estado. _id = UF.
type Tariff struct {
	State        string    `bson:"_id" json:"estado"`
	Distributor  string    `bson:"distribuidora" json:"distribuidora"`
	TariffPerKwh float64   `bson:"tarifa" json:"tarifa"`                 // R$/kWh, TUSD + TE
	TUSD         float64   `bson:"tusd,omitempty" json:"tusd,omitempty"` // R$/kWh
	TE           float64   `bson:"te,omitempty" json:"te,omitempty"`     // R$/kWh
	ValidUntil   time.Time `bson:"vigencia_fim,omitempty" json:"vigencia_fim,omitempty"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Flag é a bandeira tarifária em vigor. Só existe um documento, _id = "atual".
type Flag struct {
	ID             string    `bson:"_id,omitempty" json:"-"`
	Name           string    `bson:"bandeira" json:"bandeira"`
	ValuePerKwh    float64   `bson:"valor_kwh" json:"valor_kwh"` // acréscimo em R$/kWh
	ReferenceMonth string    `bson:"mes_referencia,omitempty" json:"mes_referencia,omitempty"`
	ValidFrom      time.Time `bson:"vigencia_inicio,omitempty" json:"vigencia_inicio,omitempty"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Metadata guarda a safra da tabela de tarifas. _id = "tarifas".
type Metadata struct {
	ID          string    `bson:"_id,omitempty" json:"-"`
	LastUpdated string    `bson:"ultima_atualizacao" json:"ultima_atualizacao"` // "Janeiro de 2025"
	Source      string    `bson:"fonte" json:"fonte"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
