//go:build integration
// +build integration

package repository

/*
	Para Rodar: go test -tags=integration -v ./internal/repository -run TestTariffRepository_Integration -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"errors"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Werneck0live/calculadora-energia/internal/db"
	"github.com/Werneck0live/calculadora-energia/internal/models"
)

func newTestRepo(t *testing.T) *TariffRepository {
	t.Helper()
	ctx := context.Background()

	// Sobe Mongo real
	mongoC, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() { _ = mongoC.Terminate(ctx) })

	uri, err := mongoC.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("conn string: %v", err)
	}

	client, err := db.NewMongoClient(uri)
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo := NewTariffRepository(client.Database("testdb"))
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	// idempotente
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes (2x): %v", err)
	}
	return repo
}

// Exercita: UpsertTariff -> GetByState -> ListByTariff -> Upsert de novo (anterior)
func TestTariffRepository_Integration_Tariffs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.GetByState(ctx, "SP"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound on empty store, got %v", err)
	}

	for _, tr := range []models.Tariff{
		{State: "SP", Distributor: "ENEL SP", TariffPerKwh: 0.65},
		{State: "AP", Distributor: "CEA", TariffPerKwh: 0.61},
		{State: "PA", Distributor: "EQUATORIAL PARÁ", TariffPerKwh: 0.98},
	} {
		prev, err := repo.UpsertTariff(ctx, &tr)
		if err != nil {
			t.Fatalf("upsert %s: %v", tr.State, err)
		}
		if prev != nil {
			t.Fatalf("upsert %s: want nil previous, got %#v", tr.State, prev)
		}
	}

	got, err := repo.GetByState(ctx, "SP")
	if err != nil || got.Distributor != "ENEL SP" || got.TariffPerKwh != 0.65 {
		t.Fatalf("get SP mismatch: %#v err=%v", got, err)
	}

	list, err := repo.ListByTariff(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].State != "AP" || list[2].State != "PA" {
		t.Fatalf("list order mismatch: %#v", list)
	}

	prev, err := repo.UpsertTariff(ctx, &models.Tariff{State: "SP", Distributor: "ENEL SP", TariffPerKwh: 0.70})
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if prev == nil || prev.TariffPerKwh != 0.65 {
		t.Fatalf("want previous 0.65, got %#v", prev)
	}

	n, err := repo.CountTariffs(ctx)
	if err != nil || n != 3 {
		t.Fatalf("count = %d err=%v; want 3", n, err)
	}
}

// Exercita: CurrentFlag vazio -> SetFlag -> SetFlag (anterior) -> metadados
func TestTariffRepository_Integration_FlagAndMetadata(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.CurrentFlag(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if prev, err := repo.SetFlag(ctx, &models.Flag{Name: "Verde"}); err != nil || prev != nil {
		t.Fatalf("first set flag: prev=%#v err=%v", prev, err)
	}
	prev, err := repo.SetFlag(ctx, &models.Flag{Name: "Amarela", ValuePerKwh: 0.01885})
	if err != nil || prev == nil || prev.Name != "Verde" {
		t.Fatalf("second set flag: prev=%#v err=%v", prev, err)
	}
	f, err := repo.CurrentFlag(ctx)
	if err != nil || f.Name != "Amarela" || f.ValuePerKwh != 0.01885 {
		t.Fatalf("current flag mismatch: %#v err=%v", f, err)
	}

	if _, err := repo.LastUpdated(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := repo.SetLastUpdated(ctx, "Janeiro de 2025", "seed"); err != nil {
		t.Fatalf("set last updated: %v", err)
	}
	label, err := repo.LastUpdated(ctx)
	if err != nil || label != "Janeiro de 2025" {
		t.Fatalf("last updated = %q err=%v", label, err)
	}
}
