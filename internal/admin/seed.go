package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Werneck0live/calculadora-energia/internal/models"
	"github.com/Werneck0live/calculadora-energia/internal/repository"
)

//go:embed seeds/tarifas.json
var tariffsJSON []byte

type seedTable struct {
	LastUpdated string `json:"ultima_atualizacao"`
	Source      string `json:"fonte"`
	Tariffs     []struct {
		State       string  `json:"estado"`
		Distributor string  `json:"distribuidora"`
		Tariff      float64 `json:"tarifa"`
	} `json:"tarifas"`
	Flag struct {
		Name           string  `json:"nome"`
		ValuePerKwh    float64 `json:"valor_kwh"`
		ReferenceMonth string  `json:"mes_referencia"`
	} `json:"bandeira"`
}

// SeedTariffs carrega a tabela de referência embutida.
// Idempotente: cria o que não existir; o que já existe é ignorado.
func SeedTariffs(ctx context.Context, store Store, pub Publisher, log *slog.Logger) error {
	var table seedTable
	if err := json.Unmarshal(tariffsJSON, &table); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	created := 0
	for _, s := range table.Tariffs {
		t := &models.Tariff{State: s.State, Distributor: s.Distributor, TariffPerKwh: s.Tariff}

		ictx, cancel := context.WithTimeout(ctx, itemTimeout)
		_, err := store.GetByState(ictx, t.State)
		if err == nil {
			cancel()
			log.Debug("seed_tariff_exists", "estado", t.State)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			cancel()
			return fmt.Errorf("seed %s: %w", t.State, err)
		}
		_, err = store.UpsertTariff(ictx, t)
		cancel()
		if err != nil {
			return fmt.Errorf("seed %s: %w", t.State, err)
		}
		created++
		log.Info("seed_tariff_created", "estado", t.State, "tarifa", t.TariffPerKwh)
		notify(ctx, pub, tariffEvent(t, nil, SourceSeed), log)
	}

	if _, err := store.CurrentFlag(ctx); errors.Is(err, repository.ErrNotFound) {
		f := &models.Flag{
			Name:           table.Flag.Name,
			ValuePerKwh:    table.Flag.ValuePerKwh,
			ReferenceMonth: table.Flag.ReferenceMonth,
		}
		if _, err := store.SetFlag(ctx, f); err != nil {
			return fmt.Errorf("seed flag: %w", err)
		}
		log.Info("seed_flag_created", "bandeira", f.Name)
		notify(ctx, pub, flagEvent(f, SourceSeed), log)
	} else if err != nil {
		return fmt.Errorf("seed flag: %w", err)
	}

	if _, err := store.LastUpdated(ctx); errors.Is(err, repository.ErrNotFound) {
		if err := store.SetLastUpdated(ctx, table.LastUpdated, table.Source); err != nil {
			return fmt.Errorf("seed metadata: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("seed metadata: %w", err)
	}

	log.Info("seed_tariffs_done", "count", len(table.Tariffs), "created", created)
	return nil
}
