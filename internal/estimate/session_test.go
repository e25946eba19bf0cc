package estimate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type estimatorMock struct {
	EstimateFn func(ctx context.Context, req Request) (*Result, error)
	calls      int
}

func (m *estimatorMock) Estimate(ctx context.Context, req Request) (*Result, error) {
	m.calls++
	if m.EstimateFn == nil {
		return nil, errors.New("EstimateFn not set")
	}
	return m.EstimateFn(ctx, req)
}

func fill(s *Session, postalCode, consumption string) {
	s.SetPostalCode(postalCode)
	s.SetConsumption(consumption)
}

func TestSession_Success(t *testing.T) {
	want := &Result{DistributorName: "Enel SP", State: "SP", TariffPerKwh: 0.65, SurchargeValue: 15, TotalValue: 112.5}
	m := &estimatorMock{EstimateFn: func(_ context.Context, req Request) (*Result, error) {
		assert.Equal(t, Request{PostalCode: "01310100", ConsumptionKwh: 150}, req)
		return want, nil
	}}
	s := NewSession(m, quietLogger())

	assert.Equal(t, "01310-1", s.SetPostalCode("013101"))
	fill(s, "01310100", "150")
	assert.Equal(t, "01310-100", s.Snapshot().PostalCode)

	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, res)

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Same(t, want, snap.Result)
	assert.NoError(t, snap.Err)
	assert.True(t, snap.CanSubmit())
}

func TestSession_ValidationFailureNeverCallsEstimator(t *testing.T) {
	m := &estimatorMock{}
	s := NewSession(m, quietLogger())
	fill(s, "0131010", "150")

	_, err := s.Submit(context.Background())
	assert.Equal(t, KindInvalidPostalCode, KindOf(err))
	assert.Zero(t, m.calls)

	snap := s.Snapshot()
	assert.Equal(t, StateFailure, snap.State)
	assert.Nil(t, snap.Result)
	assert.Equal(t, "CEP deve conter 8 dígitos", snap.Message())
}

func TestSession_EditClearsResultAndError(t *testing.T) {
	m := &estimatorMock{EstimateFn: func(context.Context, Request) (*Result, error) {
		return nil, rejected("CEP não encontrado")
	}}
	s := NewSession(m, quietLogger())
	fill(s, "99999999", "10")

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailure, s.Snapshot().State)

	s.SetConsumption("11")
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Err)
	assert.Nil(t, snap.Result)
}

func TestSession_PlainErrorBecomesUnavailable(t *testing.T) {
	m := &estimatorMock{EstimateFn: func(context.Context, Request) (*Result, error) {
		return nil, errors.New("boom")
	}}
	s := NewSession(m, quietLogger())
	fill(s, "01310100", "150")

	_, err := s.Submit(context.Background())
	assert.Equal(t, KindUpstreamUnavailable, KindOf(err))
	assert.Equal(t, FallbackMessage, s.Snapshot().Message())
}

func TestSession_SubmitIsInertWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	m := &estimatorMock{EstimateFn: func(context.Context, Request) (*Result, error) {
		<-release
		return &Result{State: "SP"}, nil
	}}
	s := NewSession(m, quietLogger())
	fill(s, "01310100", "150")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return s.Snapshot().State == StateSubmitting
	}, time.Second, 5*time.Millisecond)
	assert.False(t, s.Snapshot().CanSubmit())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	// editar durante o envio não derruba o estado
	s.SetConsumption("200")
	assert.Equal(t, StateSubmitting, s.Snapshot().State)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateSuccess, s.Snapshot().State)
	assert.Equal(t, 1, m.calls)
}

// timeout simulado: sessão vai para Failure com a mensagem genérica e o envio volta a ficar disponível
func TestSession_TimeoutReenablesSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// o contexto só cancela na desconexão depois que o corpo foi lido
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond), WithLogger(quietLogger()))
	s := NewSession(c, quietLogger())
	fill(s, "01310-100", "150")

	_, err := s.Submit(context.Background())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StateFailure, snap.State)
	assert.Equal(t, FallbackMessage, snap.Message())
	assert.Nil(t, snap.Result)
	assert.True(t, snap.CanSubmit())
}
