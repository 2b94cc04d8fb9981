package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettingsRepository implements services.SettingsStore for MongoDB.
// Settings are one document per key; unset keys read back as empty strings.
type MongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new settings repository
func NewMongoSettingsRepository(db *MongoDB) *MongoSettingsRepository {
	return &MongoSettingsRepository{
		collection: db.database.Collection("settings"),
	}
}

// GetSetting returns the value stored for a key, or "" if never set
func (r *MongoSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc settingDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.Value, nil
}

// SetSetting upserts the value for a key
func (r *MongoSettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, settingDoc{Key: key, Value: value}, opts)
	return err
}
