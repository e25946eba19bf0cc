// Package admin reúne as tarefas de manutenção da base de tarifas:
// seed inicial, sincronização com a ANEEL e ajustes manuais.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/Werneck0live/calculadora-energia/internal/models"
)

const (
	SourceSeed   = "seed"
	SourceSync   = "sync"
	SourceManual = "manual"
)

// timeout curto por item pra não travar
const itemTimeout = 3 * time.Second

// Store é o subconjunto do repositório usado pelas tarefas.
type Store interface {
	UpsertTariff(ctx context.Context, t *models.Tariff) (*models.Tariff, error)
	GetByState(ctx context.Context, uf string) (*models.Tariff, error)
	CurrentFlag(ctx context.Context) (*models.Flag, error)
	SetFlag(ctx context.Context, f *models.Flag) (*models.Flag, error)
	LastUpdated(ctx context.Context) (string, error)
	SetLastUpdated(ctx context.Context, label, source string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, ev models.TariffEvent) error
}

// notify publica sem derrubar a tarefa: o dado já está gravado.
func notify(ctx context.Context, pub Publisher, ev models.TariffEvent, log *slog.Logger) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, ev); err != nil {
		log.Warn("event_publish_failed", "tipo", ev.Type, "estado", ev.State, "err", err)
	}
}

func tariffEvent(t *models.Tariff, prev *models.Tariff, source string) models.TariffEvent {
	ev := models.TariffEvent{
		Type:        models.EventTariff,
		State:       t.State,
		Distributor: t.Distributor,
		Tariff:      t.TariffPerKwh,
		Source:      source,
	}
	if prev != nil {
		p := prev.TariffPerKwh
		ev.Previous = &p
	}
	return ev
}

func flagEvent(f *models.Flag, source string) models.TariffEvent {
	return models.TariffEvent{
		Type:      models.EventFlag,
		Flag:      f.Name,
		FlagValue: f.ValuePerKwh,
		Source:    source,
	}
}

func tariffChanged(prev, cur *models.Tariff) bool {
	return prev == nil || prev.TariffPerKwh != cur.TariffPerKwh || prev.Distributor != cur.Distributor
}

func flagChanged(prev, cur *models.Flag) bool {
	return prev == nil || prev.Name != cur.Name || prev.ValuePerKwh != cur.ValuePerKwh
}
