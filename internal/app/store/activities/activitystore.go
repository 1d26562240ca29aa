// internal/app/store/activities/activitystore.go
package activitystore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the activities collection.
// Activities have no display-order field; lists come back in insertion order.
type Store struct {
	*crud.Collection[models.Activity]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.Activity](db, "activities", "")}
}

// Create inserts a new activity.
func (s *Store) Create(ctx context.Context, a models.Activity) (primitive.ObjectID, error) {
	a.CreatedAt = time.Now().UTC()
	return s.Insert(ctx, a)
}

// Update overwrites the editable fields of an existing activity.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, a models.Activity) error {
	return s.UpdateByID(ctx, id, bson.M{
		"title":       a.Title,
		"description": a.Description,
		"location":    a.Location,
		"start_date":  a.StartDate,
		"end_date":    a.EndDate,
		"status":      a.Status,
	})
}
