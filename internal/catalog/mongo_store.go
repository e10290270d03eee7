package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the catalog database
const (
	CategoriesCollection = "category_data"
	ProductsCollection   = "products"
	MiscCollection       = "misc_data"
)

// MongoStore reads the catalog from MongoDB. It never writes.
type MongoStore struct {
	categories   *mongo.Collection
	products     *mongo.Collection
	misc         *mongo.Collection
	queryTimeout time.Duration
}

// NewMongoStore creates a MongoStore over db. A zero queryTimeout leaves the
// request context as the only deadline.
func NewMongoStore(db *mongo.Database, queryTimeout time.Duration) *MongoStore {
	return &MongoStore{
		categories:   db.Collection(CategoriesCollection),
		products:     db.Collection(ProductsCollection),
		misc:         db.Collection(MiscCollection),
		queryTimeout: queryTimeout,
	}
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *MongoStore) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	categories := []Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

func (s *MongoStore) ListProducts(ctx context.Context) ([]Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (s *MongoStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product Product
	err := s.products.FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	return &product, nil
}

func (s *MongoStore) GetHeroImages(ctx context.Context, variant HeroVariant) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	field := variant.Field()
	filter := bson.M{field: bson.M{"$exists": true, "$ne": nil}}
	opts := options.FindOne().SetProjection(bson.M{field: 1, "_id": 0})

	var doc map[string][]string
	err := s.misc.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrImagesNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", field, err)
	}

	images, ok := doc[field]
	if !ok {
		return nil, ErrImagesNotFound
	}
	if images == nil {
		images = []string{}
	}

	return images, nil
}
