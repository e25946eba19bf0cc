package handlers

import (
	"context"
	"errors"

	"github.com/Werneck0live/calculadora-energia/internal/models"
	"github.com/Werneck0live/calculadora-energia/internal/viacep"
)

type repoMock struct {
	GetByStateFn   func(ctx context.Context, uf string) (*models.Tariff, error)
	ListByTariffFn func(ctx context.Context) ([]models.Tariff, error)
	CurrentFlagFn  func(ctx context.Context) (*models.Flag, error)
	LastUpdatedFn  func(ctx context.Context) (string, error)
}

func (m *repoMock) GetByState(ctx context.Context, uf string) (*models.Tariff, error) {
	if m.GetByStateFn == nil {
		return nil, errors.New("GetByStateFn not set")
	}
	return m.GetByStateFn(ctx, uf)
}
func (m *repoMock) ListByTariff(ctx context.Context) ([]models.Tariff, error) {
	if m.ListByTariffFn == nil {
		return nil, nil
	}
	return m.ListByTariffFn(ctx)
}
func (m *repoMock) CurrentFlag(ctx context.Context) (*models.Flag, error) {
	if m.CurrentFlagFn == nil {
		return nil, errors.New("CurrentFlagFn not set")
	}
	return m.CurrentFlagFn(ctx)
}
func (m *repoMock) LastUpdated(ctx context.Context) (string, error) {
	if m.LastUpdatedFn == nil {
		return "", nil
	}
	return m.LastUpdatedFn(ctx)
}

type locatorMock struct {
	LookupFn func(ctx context.Context, cep string) (*viacep.Address, error)
	calls    int
}

func (l *locatorMock) Lookup(ctx context.Context, cep string) (*viacep.Address, error) {
	l.calls++
	if l.LookupFn == nil {
		return nil, errors.New("LookupFn not set")
	}
	return l.LookupFn(ctx, cep)
}
