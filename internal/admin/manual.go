package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Werneck0live/calculadora-energia/internal/aneel"
	"github.com/Werneck0live/calculadora-energia/internal/estimate"
	"github.com/Werneck0live/calculadora-energia/internal/models"
)

var (
	ErrUnknownFlag   = errors.New("bandeira desconhecida")
	ErrInvalidTariff = errors.New("tarifa deve ser um número positivo")
)

// valores de referência da ANEEL, em R$/kWh
var referenceFlags = map[estimate.Tier]float64{
	estimate.TierGreen:  0,
	estimate.TierYellow: 0.01885,
	estimate.TierRed1:   0.04463,
	estimate.TierRed2:   0.07877,
}

// SetFlagByName troca a bandeira vigente pelo rótulo ("Amarela", "vermelha p1"...).
func SetFlagByName(ctx context.Context, store Store, pub Publisher, name string, now time.Time, log *slog.Logger) (*models.Flag, error) {
	tier := estimate.ParseTier(name)
	value, ok := referenceFlags[tier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}

	f := &models.Flag{
		Name:           tier.String(),
		ValuePerKwh:    value,
		ReferenceMonth: aneel.ReferenceMonth(now),
		ValidFrom:      time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	prev, err := store.SetFlag(ctx, f)
	if err != nil {
		return nil, err
	}
	log.Info("flag_set_manual", "bandeira", f.Name, "valor_kwh", f.ValuePerKwh)
	if flagChanged(prev, f) {
		notify(ctx, pub, flagEvent(f, SourceManual), log)
	}
	return f, nil
}

// SetStateTariff corrige a tarifa de um estado já cadastrado.
func SetStateTariff(ctx context.Context, store Store, pub Publisher, uf string, value float64, now time.Time, log *slog.Logger) (*models.Tariff, error) {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, ErrInvalidTariff
	}
	uf = strings.ToUpper(strings.TrimSpace(uf))

	cur, err := store.GetByState(ctx, uf)
	if err != nil {
		return nil, fmt.Errorf("estado %s: %w", uf, err)
	}

	// TUSD/TE deixam de bater com o valor manual
	t := &models.Tariff{State: cur.State, Distributor: cur.Distributor, TariffPerKwh: value}
	prev, err := store.UpsertTariff(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := store.SetLastUpdated(ctx, aneel.ReferenceMonth(now), SourceManual); err != nil {
		return nil, err
	}
	log.Info("tariff_set_manual", "estado", t.State, "tarifa", t.TariffPerKwh)
	if tariffChanged(prev, t) {
		notify(ctx, pub, tariffEvent(t, prev, SourceManual), log)
	}
	return t, nil
}
