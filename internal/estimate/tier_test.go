package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTier(t *testing.T) {
	cases := []struct {
		label string
		want  Tier
	}{
		{"Verde", TierGreen},
		{"VERDE", TierGreen},
		{"Bandeira Verde", TierGreen},
		{"green", TierGreen},
		{"Amarela", TierYellow},
		{"Yellow", TierYellow},
		{"Vermelha Patamar 1", TierRed1},
		{"Vermelha - Patamar 1", TierRed1},
		{"VERMELHA P1", TierRed1},
		{"Red-1", TierRed1},
		{"Vermelha Patamar 2", TierRed2},
		{"vermelha patamar II", TierRed2},
		{"Red 2", TierRed2},
		{"Escassez Hídrica", TierScarcity},
		{"ESCASSEZ HIDRICA", TierScarcity},
		// nomes novos caem nos fragmentos de cor
		{"Vermelha Patamar 3", TierRed},
		{"Amarelinha especial", TierYellow},
		{"Verde (sem acréscimo)", TierGreen},
		// nada reconhecível
		{"", TierUnknown},
		{"Azul", TierUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseTier(tc.label), "label=%q", tc.label)
	}
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "Amarela", TierYellow.String())
	assert.Equal(t, "Desconhecida", Tier(99).String())
}
