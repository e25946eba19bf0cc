package estimate

import (
	"strings"

	"github.com/Werneck0live/calculadora-energia/internal/utils"
)

// Tier é a bandeira tarifária vigente, definida pela ANEEL.
type Tier int

const (
	TierUnknown Tier = iota
	TierGreen
	TierYellow
	// TierRed vermelha sem patamar identificável.
	TierRed
	TierRed1
	TierRed2
	// TierScarcity bandeira de escassez hídrica (2021).
	TierScarcity
)

func (t Tier) String() string {
	switch t {
	case TierGreen:
		return "Verde"
	case TierYellow:
		return "Amarela"
	case TierRed:
		return "Vermelha"
	case TierRed1:
		return "Vermelha Patamar 1"
	case TierRed2:
		return "Vermelha Patamar 2"
	case TierScarcity:
		return "Escassez Hídrica"
	default:
		return "Desconhecida"
	}
}

// nomes conhecidos, já passados por utils.Fold e sem o prefixo "bandeira"
var knownTiers = map[string]Tier{
	"verde":               TierGreen,
	"green":               TierGreen,
	"amarela":             TierYellow,
	"yellow":              TierYellow,
	"vermelha":            TierRed,
	"red":                 TierRed,
	"vermelha patamar 1":  TierRed1,
	"vermelha patamar i":  TierRed1,
	"vermelha p1":         TierRed1,
	"vermelha 1":          TierRed1,
	"vermelha i":          TierRed1,
	"red 1":               TierRed1,
	"vermelha patamar 2":  TierRed2,
	"vermelha patamar ii": TierRed2,
	"vermelha p2":         TierRed2,
	"vermelha 2":          TierRed2,
	"vermelha ii":         TierRed2,
	"red 2":               TierRed2,
	"escassez hidrica":    TierScarcity,
	"escassez":            TierScarcity,
	"scarcity":            TierScarcity,
}

// ParseTier decodifica o rótulo da bandeira. Primeiro tenta a enumeração
// conhecida; se o regulador inventar um nome novo, cai para os fragmentos de
// cor. Só devolve TierUnknown quando nada reconhecível aparece.
func ParseTier(label string) Tier {
	key := strings.TrimPrefix(utils.Fold(label), "bandeira ")
	if t, ok := knownTiers[key]; ok {
		return t
	}

	switch {
	case strings.Contains(key, "escassez"), strings.Contains(key, "scarcity"):
		return TierScarcity
	case strings.Contains(key, "verde"), strings.Contains(key, "green"):
		return TierGreen
	case strings.Contains(key, "amarel"), strings.Contains(key, "yellow"):
		return TierYellow
	case strings.Contains(key, "vermelh"), strings.Contains(key, "red"):
		return TierRed
	}
	return TierUnknown
}
