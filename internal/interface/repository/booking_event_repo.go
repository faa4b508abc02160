package repository

import (
	"context"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingEventRepository implements the BookingEventRepository interface
type MongoBookingEventRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingEventRepository creates a new MongoDB booking event repository
func NewMongoBookingEventRepository(db *mongo.Database) repository.BookingEventRepository {
	collection := db.Collection("bookingEvents")

	// Create indexes for better performance
	ctx := context.Background()

	reservationIndex := mongo.IndexModel{
		Keys: bson.M{"reservationId": 1},
	}

	// Index on createdAt for the invoice collaborator's chronological reads
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	typeIndex := mongo.IndexModel{
		Keys: bson.M{"type": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		reservationIndex,
		createdAtIndex,
		typeIndex,
	})

	return &MongoBookingEventRepository{
		collection: collection,
	}
}

// Save archives a booking event
func (r *MongoBookingEventRepository) Save(ctx context.Context, event *entity.BookingEvent) error {
	if event.ID == "" {
		event.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// FindByReservation returns the archived events of a reservation, newest
// first
func (r *MongoBookingEventRepository) FindByReservation(ctx context.Context, reservationID uint) ([]*entity.BookingEvent, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"reservationId": reservationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*entity.BookingEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
