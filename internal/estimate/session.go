package estimate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Werneck0live/calculadora-energia/internal/cep"
)

// State do formulário de uma sessão.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ErrSubmitInFlight: o botão está inerte enquanto há um envio pendente.
var ErrSubmitInFlight = errors.New("estimate: submission already in flight")

// Estimator é o que a sessão precisa do Client.
type Estimator interface {
	Estimate(ctx context.Context, req Request) (*Result, error)
}

// Snapshot é uma cópia do estado da sessão para renderizar.
// Result e Err nunca vêm preenchidos ao mesmo tempo.
type Snapshot struct {
	State       State
	PostalCode  string
	Consumption string
	Result      *Result
	Err         error
}

// CanSubmit é falso só enquanto um envio está em andamento.
func (s Snapshot) CanSubmit() bool {
	return s.State != StateSubmitting && s.State != StateValidating
}

// Message é o texto de erro a exibir, vazio quando não há erro.
func (s Snapshot) Message() string {
	return Message(s.Err)
}

// Session guarda o estado de uma interação: campos, último resultado e último erro.
// Transições:
//
//	edição                        -> Idle (limpa resultado e erro)
//	Submit (Idle/Success/Failure) -> Validating -> Submitting | Failure
//	resposta ok                   -> Success
//	resposta com erro             -> Failure
type Session struct {
	est Estimator
	log *slog.Logger

	mu          sync.Mutex
	state       State
	postalCode  string
	consumption string
	result      *Result
	err         error
}

func NewSession(est Estimator, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{est: est, log: log.With("cmp", "estimate.session")}
}

// SetPostalCode aplica cep.Format a cada tecla e devolve o texto visível.
func (s *Session) SetPostalCode(raw string) string {
	formatted := cep.Format(raw)
	s.edit(func() { s.postalCode = formatted })
	return formatted
}

func (s *Session) SetConsumption(raw string) {
	s.edit(func() { s.consumption = raw })
}

// Durante um envio o campo muda, mas o estado só sai de Submitting com a resposta.
func (s *Session) edit(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply()
	if s.state == StateSubmitting || s.state == StateValidating {
		return
	}
	s.state = StateIdle
	s.result = nil
	s.err = nil
}

// Submit valida e, se passar, chama o Estimator. Bloqueia até a resposta;
// não há cancelamento além do timeout do transporte.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.state == StateSubmitting || s.state == StateValidating {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.state = StateValidating
	s.result = nil
	s.err = nil

	req, err := NewRequest(s.postalCode, s.consumption)
	if err != nil {
		s.state = StateFailure
		s.err = err
		s.mu.Unlock()
		s.log.Debug("session_validation_failed", "kind", KindOf(err).String())
		return nil, err
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	res, err := s.est.Estimate(ctx, req)
	if err == nil && res == nil {
		err = unavailable(errors.New("empty result"))
	}
	if err != nil && KindOf(err) == KindUnknown {
		err = unavailable(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailure
		s.err = err
		s.log.Info("session_failure", "kind", KindOf(err).String())
		return nil, err
	}
	s.state = StateSuccess
	s.result = res
	return res, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:       s.state,
		PostalCode:  s.postalCode,
		Consumption: s.consumption,
		Result:      s.result,
		Err:         s.err,
	}
}
