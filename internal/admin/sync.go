package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/calculadora-energia/internal/aneel"
)

const SourceAneel = "API de Dados Abertos da ANEEL"

type SnapshotSource interface {
	Snapshot(ctx context.Context, now time.Time) (*aneel.Snapshot, error)
}

type SyncReport struct {
	Records     int
	Tariffs     int
	Changed     int
	FlagChanged bool
}

// SyncTariffs baixa a tabela vigente da ANEEL e grava na base. Sem tarifas
// válidas nada é gravado. Publica um evento por UF alterada e um para a bandeira.
func SyncTariffs(ctx context.Context, src SnapshotSource, store Store, pub Publisher, now time.Time, log *slog.Logger) (*SyncReport, error) {
	log = log.With("cmp", "admin.sync")
	start := time.Now()

	snap, err := src.Snapshot(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}
	rep := &SyncReport{Records: snap.Records, Tariffs: len(snap.Tariffs)}

	for i := range snap.Tariffs {
		t := &snap.Tariffs[i]
		ictx, cancel := context.WithTimeout(ctx, itemTimeout)
		prev, err := store.UpsertTariff(ictx, t)
		cancel()
		if err != nil {
			return rep, fmt.Errorf("sync %s: %w", t.State, err)
		}
		if !tariffChanged(prev, t) {
			continue
		}
		rep.Changed++
		log.Info("tariff_changed", "estado", t.State, "distribuidora", t.Distributor, "tarifa", t.TariffPerKwh)
		notify(ctx, pub, tariffEvent(t, prev, SourceSync), log)
	}

	if snap.Flag != nil {
		prev, err := store.SetFlag(ctx, snap.Flag)
		if err != nil {
			return rep, fmt.Errorf("sync flag: %w", err)
		}
		if flagChanged(prev, snap.Flag) {
			rep.FlagChanged = true
			log.Info("flag_changed", "bandeira", snap.Flag.Name, "valor_kwh", snap.Flag.ValuePerKwh)
			notify(ctx, pub, flagEvent(snap.Flag, SourceSync), log)
		}
	} else {
		log.Warn("flag_unavailable_keeping_current")
	}

	if err := store.SetLastUpdated(ctx, aneel.ReferenceMonth(now), SourceAneel); err != nil {
		return rep, fmt.Errorf("sync metadata: %w", err)
	}

	log.Info("tariff_sync_done",
		"records", rep.Records,
		"tarifas", rep.Tariffs,
		"alteradas", rep.Changed,
		"bandeira_alterada", rep.FlagChanged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rep, nil
}
