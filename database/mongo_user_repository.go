package database

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"pickem-app-go/models"
	"pickem-app-go/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements services.UserStore for MongoDB. Users are
// keyed by username; pick submissions live inside the user document under
// string week keys.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *MongoDB) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.database.Collection("users"),
	}
}

// GetUserByUsername retrieves a user by their username
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// GetUserByEmail retrieves a user by their email address (case-insensitive)
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc userDoc
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// GetAllUsers retrieves all users from the database
func (r *MongoUserRepository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toModel())
	}
	return users, nil
}

// CreateUser creates a new user in the database
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, newUserDoc(user))
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrAlreadyRegistered
	}
	return err
}

// UpdateUser updates an existing user in the database
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.Username}, newUserDoc(user))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user from the database
func (r *MongoUserRepository) DeleteUser(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": username})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return services.ErrUserNotFound
	}
	return nil
}

// SavePickSubmission writes a single week's submission without touching the
// rest of the user document.
func (r *MongoUserRepository) SavePickSubmission(ctx context.Context, username string, week int, sub *models.PickSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"picks." + strconv.Itoa(week): newSubmissionDoc(sub),
		"updated_at":                  time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": username}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the users collection relies on
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	emailIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.collection.Indexes().CreateOne(ctx, emailIndexModel)
	return err
}
