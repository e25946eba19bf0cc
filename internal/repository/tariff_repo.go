package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/calculadora-energia/internal/models"
)

var ErrNotFound = errors.New("not found")

const (
	flagID     = "atual"
	metadataID = "tarifas"
	idxTariff  = "idx_tarifa"
)

type TariffRepository struct {
	tariffs  *mongo.Collection
	flags    *mongo.Collection
	metadata *mongo.Collection
}

func NewTariffRepository(db *mongo.Database) *TariffRepository {
	return &TariffRepository{
		tariffs:  db.Collection("tarifas"),
		flags:    db.Collection("bandeiras"),
		metadata: db.Collection("metadados"),
	}
}

// EnsureIndexes cria o índice usado na comparação nacional (ordem por tarifa).
func (r *TariffRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "tarifa", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName(idxTariff),
	}
	_, err := r.tariffs.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 85 || ce.Code == 86) { // IndexOptionsConflict / IndexKeySpecsConflict
		if _, dropErr := r.tariffs.Indexes().DropOne(ctx, idxTariff); dropErr != nil {
			return fmt.Errorf("drop index %s: %w", idxTariff, dropErr)
		}
		_, createErr := r.tariffs.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

// UpsertTariff grava a tarifa do estado e devolve o documento anterior
// (nil quando o estado ainda não existia).
func (r *TariffRepository) UpsertTariff(ctx context.Context, t *models.Tariff) (*models.Tariff, error) {
	if t.State == "" {
		return nil, errors.New("tariff without state")
	}
	t.UpdatedAt = time.Now().UTC()

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var prev models.Tariff
	err := r.tariffs.FindOneAndReplace(ctx, bson.M{"_id": t.State}, t, opts).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("upsert tariff %s: %w", t.State, err)
	}
	return &prev, nil
}

func (r *TariffRepository) GetByState(ctx context.Context, uf string) (*models.Tariff, error) {
	var t models.Tariff
	err := r.tariffs.FindOne(ctx, bson.M{"_id": uf}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByTariff devolve a tabela nacional da menor para a maior tarifa.
func (r *TariffRepository) ListByTariff(ctx context.Context) ([]models.Tariff, error) {
	opts := options.Find().SetSort(bson.D{{Key: "tarifa", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.tariffs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Tariff{}
	for cur.Next(ctx) {
		var t models.Tariff
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, cur.Err()
}

func (r *TariffRepository) CountTariffs(ctx context.Context) (int64, error) {
	return r.tariffs.CountDocuments(ctx, bson.M{})
}

func (r *TariffRepository) CurrentFlag(ctx context.Context) (*models.Flag, error) {
	var f models.Flag
	err := r.flags.FindOne(ctx, bson.M{"_id": flagID}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// SetFlag troca a bandeira vigente e devolve a anterior (nil se não havia).
func (r *TariffRepository) SetFlag(ctx context.Context, f *models.Flag) (*models.Flag, error) {
	f.ID = flagID
	f.UpdatedAt = time.Now().UTC()

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var prev models.Flag
	err := r.flags.FindOneAndReplace(ctx, bson.M{"_id": flagID}, f, opts).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set flag: %w", err)
	}
	return &prev, nil
}

func (r *TariffRepository) LastUpdated(ctx context.Context) (string, error) {
	var m models.Metadata
	err := r.metadata.FindOne(ctx, bson.M{"_id": metadataID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return m.LastUpdated, nil
}

func (r *TariffRepository) SetLastUpdated(ctx context.Context, label, source string) error {
	doc := models.Metadata{
		ID:          metadataID,
		LastUpdated: label,
		Source:      source,
		UpdatedAt:   time.Now().UTC(),
	}
	_, err := r.metadata.ReplaceOne(ctx, bson.M{"_id": metadataID}, doc, options.Replace().SetUpsert(true))
	return err
}
