package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RaiAraujo30/Complete-Physical-Store/models"
)

// StoresCollection is the Mongo collection holding store documents.
const StoresCollection = "stores"

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// StoreRepository defines data-access operations for physical stores.
type StoreRepository interface {
	// ListAll returns every store. It is unbounded.
	ListAll(ctx context.Context) ([]models.Store, error)
	FindPage(ctx context.Context, limit, offset int) ([]models.Store, int64, error)
	FindByID(ctx context.Context, id string) (*models.Store, error)
	FindByState(ctx context.Context, state string, limit, offset int) ([]models.Store, int64, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, id string, updates bson.M) (*models.Store, error)
	Delete(ctx context.Context, id string) (*models.Store, error)
}

// MongoStoreRepository implements StoreRepository on a Mongo collection.
type MongoStoreRepository struct {
	collection *mongo.Collection
}

// NewMongoStoreRepository creates a MongoStoreRepository.
func NewMongoStoreRepository(db *mongo.Database) StoreRepository {
	return &MongoStoreRepository{collection: db.Collection(StoresCollection)}
}

func (r *MongoStoreRepository) ListAll(ctx context.Context) ([]models.Store, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := []models.Store{}
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("decode stores: %w", err)
	}
	return stores, nil
}

func (r *MongoStoreRepository) FindPage(ctx context.Context, limit, offset int) ([]models.Store, int64, error) {
	return r.findPaged(ctx, bson.M{}, limit, offset)
}

func (r *MongoStoreRepository) FindByState(ctx context.Context, state string, limit, offset int) ([]models.Store, int64, error) {
	return r.findPaged(ctx, bson.M{"state": state}, limit, offset)
}

func (r *MongoStoreRepository) findPaged(ctx context.Context, filter bson.M, limit, offset int) ([]models.Store, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := []models.Store{}
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, 0, fmt.Errorf("decode stores: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count stores: %w", err)
	}
	return stores, total, nil
}

func (r *MongoStoreRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find store %s: %w", id, err)
	}
	return &store, nil
}

func (r *MongoStoreRepository) Create(ctx context.Context, store *models.Store) error {
	now := time.Now().UTC()
	store.CreatedAt = now
	store.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, store); err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// Update applies $set with updates and returns the document after the change.
func (r *MongoStoreRepository) Update(ctx context.Context, id string, updates bson.M) (*models.Store, error) {
	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var store models.Store
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update store %s: %w", id, err)
	}
	return &store, nil
}

// Delete removes the store and returns what was deleted.
func (r *MongoStoreRepository) Delete(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete store %s: %w", id, err)
	}
	return &store, nil
}
