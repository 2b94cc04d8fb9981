package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pickem-app-go/models"
	"pickem-app-go/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSeasonRepository implements services.SeasonStore for MongoDB. Season
// documents are keyed by name and carry a doc_version counter; SaveSeason
// only matches when the caller's version is still current, so concurrent
// admin edits fail loudly instead of overwriting each other.
type MongoSeasonRepository struct {
	collection *mongo.Collection
}

// NewMongoSeasonRepository creates a new MongoDB season repository
func NewMongoSeasonRepository(db *MongoDB) *MongoSeasonRepository {
	return &MongoSeasonRepository{
		collection: db.database.Collection("seasons"),
	}
}

// GetSeason retrieves a season by name
func (r *MongoSeasonRepository) GetSeason(ctx context.Context, name string) (*models.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc seasonDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrSeasonNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// GetActiveSeason retrieves the active season, or nil if none is active
func (r *MongoSeasonRepository) GetActiveSeason(ctx context.Context) (*models.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc seasonDoc
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// GetAllSeasons retrieves every season, newest name first
func (r *MongoSeasonRepository) GetAllSeasons(ctx context.Context) ([]*models.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []seasonDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	seasons := make([]*models.Season, 0, len(docs))
	for i := range docs {
		seasons = append(seasons, docs[i].toModel())
	}
	return seasons, nil
}

// CreateSeason inserts a new season document
func (r *MongoSeasonRepository) CreateSeason(ctx context.Context, season *models.Season) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, newSeasonDoc(season))
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrSeasonExists
	}
	return err
}

// SaveSeason replaces the season document if the caller's DocVersion is
// still the stored one, then bumps the version both in the store and on the
// in-memory season.
func (r *MongoSeasonRepository) SaveSeason(ctx context.Context, season *models.Season) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := newSeasonDoc(season)
	doc.DocVersion = season.DocVersion + 1

	filter := bson.M{"_id": season.Name, "doc_version": season.DocVersion}
	result, err := r.collection.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": season.Name})
		if err == nil && count == 0 {
			return services.ErrSeasonNotFound
		}
		return services.ErrVersionConflict
	}

	season.DocVersion = doc.DocVersion
	return nil
}

// SetActiveSeason marks one season active and every other season inactive
func (r *MongoSeasonRepository) SetActiveSeason(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{"active": true}, "$inc": bson.M{"doc_version": int64(1)}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrSeasonNotFound
	}

	_, err = r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": name}, "active": true},
		bson.M{"$set": bson.M{"active": false}, "$inc": bson.M{"doc_version": int64(1)}})
	if err != nil {
		return fmt.Errorf("failed to deactivate other seasons: %w", err)
	}
	return nil
}

// DeleteSeason removes a season document
func (r *MongoSeasonRepository) DeleteSeason(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return services.ErrSeasonNotFound
	}
	return nil
}
