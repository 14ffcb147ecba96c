package cityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sewakantor/database"
	"sewakantor/models"
)

// CityRepository defines methods for city data access.
type CityRepository interface {
	GetByID(id string) (*models.City, error)
	GetAll() ([]models.City, error)
	Create(city *models.City) error
	Update(city *models.City) error
	Delete(id string) error
}

// MongoCityRepo implements CityRepository using MongoDB.
type MongoCityRepo struct {
	coll *mongo.Collection
}

// NewMongoCityRepo creates a new instance of CityRepository using MongoDB.
func NewMongoCityRepo() CityRepository {
	coll := database.DB().Collection("cities")
	repo := &MongoCityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCityRepo) GetByID(id string) (*models.City, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var city models.City
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&city); err != nil {
		return nil, fmt.Errorf("failed to fetch city with id %s: %w", id, err)
	}
	return &city, nil
}

func (r *MongoCityRepo) GetAll() ([]models.City, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cities: %w", err)
	}
	defer cursor.Close(ctx)

	var cities []models.City
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, fmt.Errorf("failed to decode cities: %w", err)
	}
	return cities, nil
}

func (r *MongoCityRepo) Create(city *models.City) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, city)
	if err != nil {
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

func (r *MongoCityRepo) Update(city *models.City) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": city.ID}, bson.M{"$set": city})
	if err != nil {
		return fmt.Errorf("failed to update city with id %s: %w", city.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("city with id %s not found", city.ID)
	}
	return nil
}

func (r *MongoCityRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete city with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("city with id %s not found", id)
	}
	return nil
}
