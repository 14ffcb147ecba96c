package officeRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sewakantor/database"
	"sewakantor/models"
)

// MongoOfficeRepo implements OfficeRepository using MongoDB.
type MongoOfficeRepo struct {
	coll *mongo.Collection
}

// NewMongoOfficeRepo creates a new instance of OfficeRepository using MongoDB.
func NewMongoOfficeRepo() OfficeRepository {
	coll := database.DB().Collection("offices")
	repo := &MongoOfficeRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields that are frequently used in queries.
func (r *MongoOfficeRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "capacity", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoOfficeRepo) GetByID(id string) (*models.Office, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var office models.Office
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&office); err != nil {
		return nil, fmt.Errorf("failed to fetch office with id %s: %w", id, err)
	}
	return &office, nil
}

func (r *MongoOfficeRepo) GetBySlug(slug string) (*models.Office, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var office models.Office
	filter := bson.M{"slug": slug}
	if err := r.coll.FindOne(ctx, filter).Decode(&office); err != nil {
		return nil, fmt.Errorf("failed to fetch office with slug %s: %w", slug, err)
	}
	return &office, nil
}

// Search returns offices matching the criteria, newest first, with the total count.
func (r *MongoOfficeRepo) Search(criteria OfficeSearchCriteria) ([]models.Office, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if criteria.OnlyAvailable {
		filter["status"] = models.OfficeStatusAvailable
	}
	if criteria.CityID != "" {
		filter["city_id"] = criteria.CityID
	}
	if criteria.MinCapacity > 0 || criteria.MaxCapacity > 0 {
		capFilter := bson.M{}
		if criteria.MinCapacity > 0 {
			capFilter["$gte"] = criteria.MinCapacity
		}
		if criteria.MaxCapacity > 0 {
			capFilter["$lte"] = criteria.MaxCapacity
		}
		filter["capacity"] = capFilter
	}
	if criteria.MinPrice > 0 || criteria.MaxPrice > 0 {
		period := criteria.PricePeriod
		if period == "" {
			period = models.PeriodDaily
		}
		priceField := "price_for_duration." + string(period)
		priceFilter := bson.M{}
		if criteria.MinPrice > 0 {
			priceFilter["$gte"] = criteria.MinPrice
		}
		if criteria.MaxPrice > 0 {
			priceFilter["$lte"] = criteria.MaxPrice
		}
		filter[priceField] = priceFilter
	}
	if criteria.Search != "" {
		pattern := primitive.Regex{Pattern: criteria.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"address": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count offices: %w", err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if criteria.PerPage > 0 {
		page := criteria.Page
		if page < 1 {
			page = 1
		}
		findOpts.SetSkip(int64((page - 1) * criteria.PerPage)).SetLimit(int64(criteria.PerPage))
	}

	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search offices: %w", err)
	}
	defer cursor.Close(ctx)

	var offices []models.Office
	if err := cursor.All(ctx, &offices); err != nil {
		return nil, 0, fmt.Errorf("failed to decode offices: %w", err)
	}
	return offices, total, nil
}

// Create inserts a new office document.
func (r *MongoOfficeRepo) Create(office *models.Office) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, office)
	if err != nil {
		return fmt.Errorf("failed to create office: %w", err)
	}
	return nil
}

// Update replaces an existing office document.
func (r *MongoOfficeRepo) Update(office *models.Office) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": office.ID}
	update := bson.M{"$set": office}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update office with id %s: %w", office.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("office with id %s not found", office.ID)
	}
	return nil
}

// Delete removes an office document by its ID.
func (r *MongoOfficeRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete office with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("office with id %s not found", id)
	}
	return nil
}

// UpdateWithDocument updates an office using a custom update document.
func (r *MongoOfficeRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update office with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("office with id %s not found", id)
	}
	return nil
}
