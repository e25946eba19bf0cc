package aneel

import (
	"sort"
	"strings"

	"github.com/Werneck0live/calculadora-energia/internal/utils"
)

// SigAgente (e nomes antigos) -> UF
var distributorState = map[string]string{
	"ELETROACRE": "AC", "ENERGISA ACRE": "AC",
	"CEAL": "AL", "EQUATORIAL ALAGOAS": "AL",
	"CEA": "AP",
	"AMAZONAS ENERGIA": "AM", "ELETROBRÁS AMAZONAS": "AM",
	"COELBA": "BA", "NEOENERGIA COELBA": "BA",
	"COELCE": "CE", "ENEL CEARÁ": "CE", "ENEL CE": "CE",
	"CEB": "DF", "CEB DISTRIBUIÇÃO": "DF", "CEB DIS": "DF",
	"ESCELSA": "ES", "EDP ESPÍRITO SANTO": "ES", "EDP ES": "ES",
	"CELG": "GO", "ENEL GOIÁS": "GO", "ENEL GO": "GO",
	"CEMAR": "MA", "EQUATORIAL MARANHÃO": "MA",
	"CEMAT": "MT", "ENERGISA MATO GROSSO": "MT",
	"ENERSUL": "MS", "ENERGISA MATO GROSSO DO SUL": "MS", "ENERGISA MS": "MS",
	"CEMIG": "MG", "CEMIG DISTRIBUIÇÃO": "MG", "CEMIG-D": "MG",
	"CELPA": "PA", "EQUATORIAL PARÁ": "PA",
	"EPB": "PB", "ENERGISA PARAÍBA": "PB", "ENERGISA PB": "PB",
	"COPEL": "PR", "COPEL DISTRIBUIÇÃO": "PR", "COPEL-DIS": "PR",
	"CELPE": "PE", "NEOENERGIA PERNAMBUCO": "PE",
	"CEPISA": "PI", "EQUATORIAL PIAUÍ": "PI",
	"LIGHT": "RJ", "LIGHT SESA": "RJ", "ENEL RIO": "RJ", "ENEL RJ": "RJ",
	"COSERN": "RN", "NEOENERGIA COSERN": "RN",
	"CEEE": "RS", "CEEE-D": "RS", "RGE": "RS", "RGE SUL": "RS",
	"CERON": "RO", "ENERGISA RONDÔNIA": "RO",
	"CER": "RR", "RORAIMA ENERGIA": "RR",
	"CELESC": "SC", "CELESC DISTRIBUIÇÃO": "SC", "CELESC-DIS": "SC",
	"CPFL": "SP", "CPFL PAULISTA": "SP", "CPFL-PAULISTA": "SP",
	"CPFL PIRATININGA": "SP", "CPFL-PIRATININGA": "SP", "CPFL-PIRATINING": "SP",
	"CPFL MOCOCA": "SP", "ELEKTRO": "SP", "ENEL SP": "SP", "ENEL SÃO PAULO": "SP",
	"EDP SÃO PAULO": "SP", "BANDEIRANTE": "SP",
	"SULGIPE": "SE", "ENERGISA SERGIPE": "SE",
	"CELTINS": "TO", "ENERGISA TOCANTINS": "TO",
}

type distributorEntry struct {
	folded string
	state  string
}

var (
	foldedExact = map[string]string{}
	// mais longo primeiro: "cemig distribuicao" ganha de "cemig"
	foldedByLength []distributorEntry
)

func init() {
	for name, uf := range distributorState {
		f := utils.Fold(name)
		foldedExact[f] = uf
		foldedByLength = append(foldedByLength, distributorEntry{folded: f, state: uf})
	}
	sort.Slice(foldedByLength, func(i, j int) bool {
		a, b := foldedByLength[i], foldedByLength[j]
		if len(a.folded) != len(b.folded) {
			return len(a.folded) > len(b.folded)
		}
		return a.folded < b.folded
	})
}

// StateFor identifica a UF da distribuidora. Tenta o nome exato (sem acento,
// sem caixa, sem pontuação) e depois casamento parcial por palavras inteiras
// nos dois sentidos.
func StateFor(distributor string) (string, bool) {
	d := utils.Fold(distributor)
	if d == "" {
		return "", false
	}
	if uf, ok := foldedExact[d]; ok {
		return uf, true
	}
	padded := " " + d + " "
	for _, e := range foldedByLength {
		name := " " + e.folded + " "
		if strings.Contains(padded, name) || strings.Contains(name, padded) {
			return e.state, true
		}
	}
	return "", false
}
