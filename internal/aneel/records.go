package aneel

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text aceita string, número ou null: o datastore não é consistente nos tipos.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	default:
		*t = Text(b)
		return nil
	}
}

func (t Text) String() string { return string(t) }

// TariffRecord é uma linha do recurso de tarifas homologadas. Valores em R$/MWh.
type TariffRecord struct {
	SigAgente              Text `json:"SigAgente"`
	DscSubGrupo            Text `json:"DscSubGrupo"`
	DscClasse              Text `json:"DscClasse"`
	DscModalidadeTarifaria Text `json:"DscModalidadeTarifaria"`
	DatInicioVigencia      Text `json:"DatInicioVigencia"`
	DatFimVigencia         Text `json:"DatFimVigencia"`
	VlrTUSD                Text `json:"VlrTUSD"`
	VlrTE                  Text `json:"VlrTE"`
}

// FlagRecord aceita os dois layouts já publicados para o acionamento de bandeiras.
type FlagRecord struct {
	SigBandeiraTarifaria Text `json:"SigBandeiraTarifaria"`
	NomBandeiraAcionada  Text `json:"NomBandeiraAcionada"`
	ValorBandeira        Text `json:"ValorBandeira"`
	VlrAdicionalBandeira Text `json:"VlrAdicionalBandeira"`
	DatInicioVigencia    Text `json:"DatInicioVigencia"`
	DatCompetencia       Text `json:"DatCompetencia"`
}

func (r FlagRecord) Name() string {
	return firstNonEmpty(r.NomBandeiraAcionada, r.SigBandeiraTarifaria)
}

func (r FlagRecord) Value() Text {
	return Text(firstNonEmpty(r.VlrAdicionalBandeira, r.ValorBandeira))
}

func (r FlagRecord) Start() string {
	return firstNonEmpty(r.DatCompetencia, r.DatInicioVigencia)
}

func firstNonEmpty(vs ...Text) string {
	for _, v := range vs {
		if s := strings.TrimSpace(string(v)); s != "" && s != "N/A" {
			return s
		}
	}
	return ""
}
