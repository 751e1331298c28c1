package barberRepo

import (
	"context"
	"fmt"
	"time"

	"barberbook/database"
	"barberbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBarberRepo implements BarberRepository using MongoDB.
type MongoBarberRepo struct {
	coll *mongo.Collection
}

// NewMongoBarberRepo creates a new instance of BarberRepository using MongoDB.
func NewMongoBarberRepo() BarberRepository {
	coll := database.Collection("barbers")
	repo := &MongoBarberRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBarberRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetAll returns the active roster ordered by id.
func (r *MongoBarberRepo) GetAll() ([]models.Barber, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve barbers: %w", err)
	}
	defer cursor.Close(ctx)

	var barbers []models.Barber
	for cursor.Next(ctx) {
		var b models.Barber
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode barber: %w", err)
		}
		barbers = append(barbers, b)
	}
	return barbers, nil
}

// GetByID retrieves a barber by its public id.
func (r *MongoBarberRepo) GetByID(id int) (*models.Barber, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var barber models.Barber
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&barber); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch barber with id %d: %w", id, err)
	}
	return &barber, nil
}

// Create inserts a new barber document.
func (r *MongoBarberRepo) Create(barber *models.Barber) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, barber); err != nil {
		return fmt.Errorf("failed to create barber: %w", err)
	}
	return nil
}

// SetCheckedIn flips the availability flag for a barber.
func (r *MongoBarberRepo) SetCheckedIn(id int, checkedIn bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"is_checked_in": checkedIn}})
	if err != nil {
		return fmt.Errorf("failed to update barber %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("barber with id %d not found", id)
	}
	return nil
}

// CountCheckedIn returns how many barbers are currently checked in.
func (r *MongoBarberRepo) CountCheckedIn() (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"is_checked_in": true, "is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count checked-in barbers: %w", err)
	}
	return int(n), nil
}
