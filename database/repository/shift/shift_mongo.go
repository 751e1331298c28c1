package shiftRepo

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

// MongoShiftRepo implements ShiftRepository using MongoDB.
type MongoShiftRepo struct {
	coll *mongo.Collection
}

// NewMongoShiftRepo creates a new instance of ShiftRepository using MongoDB.
func NewMongoShiftRepo() ShiftRepository {
	coll := database.Collection("shifts")
	repo := &MongoShiftRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoShiftRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "barber_id", Value: 1},
				{Key: "weekday", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Save upserts the shift for the shift's (barber, weekday) pair.
func (r *MongoShiftRepo) Save(shift *models.Shift) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"barber_id": shift.BarberID, "weekday": shift.Weekday}
	update := bson.M{"$set": bson.M{
		"barber_id":  shift.BarberID,
		"weekday":    shift.Weekday,
		"start_hour": shift.StartHour,
		"end_hour":   shift.EndHour,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

// GetByBarberAndWeekday returns the shift for one weekday, or nil when the
// barber is off that day.
func (r *MongoShiftRepo) GetByBarberAndWeekday(barberID, weekday int) (*models.Shift, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var shift models.Shift
	err := r.coll.FindOne(ctx, bson.M{"barber_id": barberID, "weekday": weekday}).Decode(&shift)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}
	return &shift, nil
}

// GetByBarber returns a barber's full weekly schedule.
func (r *MongoShiftRepo) GetByBarber(barberID int) ([]models.Shift, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"barber_id": barberID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []models.Shift
	for cursor.Next(ctx) {
		var s models.Shift
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}
