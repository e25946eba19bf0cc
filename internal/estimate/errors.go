package estimate

import (
	"errors"
	"fmt"
)

// FallbackMessage é exibida para qualquer falha que não traga mensagem do servidor.
const FallbackMessage = "Erro ao calcular. Tente novamente."

// Kind classifica as falhas de uma estimativa.
type Kind int

const (
	// KindUnknown não deveria aparecer; tratado como indisponibilidade.
	KindUnknown Kind = iota
	// KindInvalidPostalCode CEP sem 8 dígitos ou com caracteres inválidos.
	KindInvalidPostalCode
	// KindInvalidConsumption consumo ausente, não numérico ou negativo.
	KindInvalidConsumption
	// KindUpstreamRejected o serviço devolveu {"error": "..."}.
	KindUpstreamRejected
	// KindUpstreamUnavailable rede, timeout ou resposta malformada.
	KindUpstreamUnavailable
	// KindDataIntegrity valores recebidos violam total = tarifa*consumo + bandeira.
	KindDataIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPostalCode:
		return "invalid_postal_code"
	case KindInvalidConsumption:
		return "invalid_consumption"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindDataIntegrity:
		return "data_integrity"
	default:
		return "unknown"
	}
}

// Error carrega o tipo da falha e uma mensagem que pode ir direto para a tela.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf devolve o Kind de err, ou KindUnknown se err não for um *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message devolve o texto exibível para err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return FallbackMessage
}

// IsClientSide indica falhas de validação, que nunca chegam à rede.
func IsClientSide(err error) bool {
	k := KindOf(err)
	return k == KindInvalidPostalCode || k == KindInvalidConsumption
}

func invalidPostalCode() *Error {
	return &Error{Kind: KindInvalidPostalCode, Message: "CEP deve conter 8 dígitos"}
}

func invalidConsumption(msg string, err error) *Error {
	return &Error{Kind: KindInvalidConsumption, Message: msg, Err: err}
}

func unavailable(err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: FallbackMessage, Err: err}
}

func rejected(msg string) *Error {
	return &Error{Kind: KindUpstreamRejected, Message: msg}
}

func integrity(format string, args ...any) *Error {
	return &Error{Kind: KindDataIntegrity, Message: FallbackMessage, Err: fmt.Errorf(format, args...)}
}
