// internal/app/store/sliders/sliderstore.go
package sliderstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the sliders collection.
type Store struct {
	*crud.Collection[models.SliderItem]
}

// New creates a slider store. Slides are ordered by their order field.
func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.SliderItem](db, "sliders", "order")}
}

// Create inserts a new slide appended to the end of the carousel and
// returns its id and assigned order.
func (s *Store) Create(ctx context.Context, sl models.SliderItem) (primitive.ObjectID, int, error) {
	order, err := s.NextOrder(ctx)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	sl.Order = order
	sl.CreatedAt = time.Now().UTC()
	id, err := s.Insert(ctx, sl)
	return id, order, err
}

// Update overwrites the editable fields of an existing slide.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, sl models.SliderItem) error {
	return s.UpdateByID(ctx, id, bson.M{
		"title":       sl.Title,
		"description": sl.Description,
		"image_url":   sl.ImageURL,
		"order":       sl.Order,
	})
}
