package database

import (
	"context"
	"errors"
	"time"

	"pickem-app-go/models"
	"pickem-app-go/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPendingUserRepository implements services.PendingUserStore for
// MongoDB. The registration queue is small and append-mostly, so documents
// are keyed by the requested username.
type MongoPendingUserRepository struct {
	collection *mongo.Collection
}

// NewMongoPendingUserRepository creates a new pending user repository
func NewMongoPendingUserRepository(db *MongoDB) *MongoPendingUserRepository {
	return &MongoPendingUserRepository{
		collection: db.database.Collection("pending_users"),
	}
}

// GetPendingUsers retrieves the registration queue, oldest request first
func (r *MongoPendingUserRepository) GetPendingUsers(ctx context.Context) ([]*models.PendingUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []pendingUserDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	pending := make([]*models.PendingUser, 0, len(docs))
	for i := range docs {
		pending = append(pending, docs[i].toModel())
	}
	return pending, nil
}

// GetPendingUser retrieves a single queued registration by username
func (r *MongoPendingUserRepository) GetPendingUser(ctx context.Context, username string) (*models.PendingUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc pendingUserDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrPendingNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// CreatePendingUser queues a registration for approval
func (r *MongoPendingUserRepository) CreatePendingUser(ctx context.Context, pending *models.PendingUser) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, newPendingUserDoc(pending))
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrAlreadyRegistered
	}
	return err
}

// DeletePendingUser removes a queued registration
func (r *MongoPendingUserRepository) DeletePendingUser(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": username})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return services.ErrPendingNotFound
	}
	return nil
}
