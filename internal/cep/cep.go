package cep

import "strings"

// Length é a quantidade de dígitos de um CEP completo.
const Length = 8

const (
	prefixLen = 5
	separator = "-"
)

// Digits remove qualquer coisa que não seja dígito ASCII.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format canonicaliza a entrada digitada para a forma visível DDDDD-DDD.
// Até 5 dígitos o valor volta sem separador (usuário ainda digitando);
// dígitos além do oitavo são descartados. Nunca falha e é idempotente.
func Format(s string) string {
	d := Digits(s)
	if len(d) <= prefixLen {
		return d
	}
	if len(d) > Length {
		d = d[:Length]
	}
	return d[:prefixLen] + separator + d[prefixLen:]
}

// StripSeparator tira o hífen e espaços das bordas, sem descartar outros
// caracteres: "0131A-100" continua inválido depois disso.
func StripSeparator(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), separator, "")
}

// Valid: exatamente 8 dígitos ASCII, sem separador.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
