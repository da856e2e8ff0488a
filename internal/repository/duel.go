package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"opening_arena/internal/bootstrap"
	arenadom "opening_arena/internal/domain/arena"
	"opening_arena/internal/errors"
)

const duelCollection = "duels"

// DuelRepository archives finished duels in mongo.
type DuelRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewDuelRepository(cfg bootstrap.Config, log *zap.SugaredLogger, mongoDB *mongo.Database) *DuelRepository {
	return &DuelRepository{
		cfg:   cfg,
		log:   log,
		mongo: mongoDB,
	}
}

func (d *DuelRepository) GenerateDuelID(ctx context.Context) string {
	return uuid.New().String()
}

func (d *DuelRepository) SaveDuel(ctx context.Context, record arenadom.DuelRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := d.mongo.Collection(duelCollection)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		d.log.Errorf("failed to insert duel %s: %v", record.ID, err)
		return errors.ErrSaveDuelFailed
	}

	d.log.Infof("duel stored with id: %s", record.ID)
	return nil
}

func (d *DuelRepository) GetDuelByID(ctx context.Context, duelID string) (arenadom.DuelRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := d.mongo.Collection(duelCollection)
	filter := bson.M{"duel_id": duelID}

	var record arenadom.DuelRecord
	err := collection.FindOne(ctx, filter).Decode(&record)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return arenadom.DuelRecord{}, errors.ErrDuelNotFound
	}
	if err != nil {
		d.log.Errorf("failed to fetch duel %s: %v", duelID, err)
		return arenadom.DuelRecord{}, err
	}
	return record, nil
}
