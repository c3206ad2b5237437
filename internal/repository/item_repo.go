package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsecheck/internal/model"
)

// ItemRepo handles MongoDB operations for the item catalog
type ItemRepo interface {
	// Basic CRUD Operations
	Upsert(ctx context.Context, item *model.Item) error
	UpsertMany(ctx context.Context, items []model.Item) (int, error)
	GetByID(ctx context.Context, itemID string) (*model.Item, error)
	Delete(ctx context.Context, itemID string) (bool, error)

	// Catalog reads, ordered by item_id so selection sees a stable order
	GetByConstruct(ctx context.Context, construct model.Construct) ([]model.Item, error)
	GetAll(ctx context.Context) ([]model.Item, error)
	GetActive(ctx context.Context) ([]model.Item, error)
}

type itemRepo struct {
	collection *mongo.Collection
}

// NewItemRepo creates a new item repository with indexes
func NewItemRepo(db *mongo.Database) ItemRepo {
	repo := &itemRepo{
		collection: db.Collection("items"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *itemRepo) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "item_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "construct", Value: 1}, {Key: "active", Value: 1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

var byItemID = options.Find().SetSort(bson.D{{Key: "item_id", Value: 1}})

func (r *itemRepo) Upsert(ctx context.Context, item *model.Item) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"item_id": item.ItemID}, item, opts)
	return err
}

func (r *itemRepo) UpsertMany(ctx context.Context, items []model.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(items))
	for i := range items {
		it := items[i]
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		it.UpdatedAt = now
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"item_id": it.ItemID}).
			SetReplacement(it).
			SetUpsert(true))
	}
	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

func (r *itemRepo) GetByID(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	err := r.collection.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Delete(ctx context.Context, itemID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"item_id": itemID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *itemRepo) GetByConstruct(ctx context.Context, construct model.Construct) ([]model.Item, error) {
	return r.find(ctx, bson.M{"construct": construct})
}

func (r *itemRepo) GetAll(ctx context.Context) ([]model.Item, error) {
	return r.find(ctx, bson.M{})
}

func (r *itemRepo) GetActive(ctx context.Context) ([]model.Item, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *itemRepo) find(ctx context.Context, filter bson.M) ([]model.Item, error) {
	cursor, err := r.collection.Find(ctx, filter, byItemID)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []model.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
