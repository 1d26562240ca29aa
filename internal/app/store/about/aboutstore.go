// internal/app/store/about/aboutstore.go
package aboutstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the about_items collection.
type Store struct {
	*crud.Collection[models.AboutItem]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.AboutItem](db, "about_items", "order")}
}

// Create inserts a new about entry appended to the end of the section.
func (s *Store) Create(ctx context.Context, item models.AboutItem) (primitive.ObjectID, int, error) {
	order, err := s.NextOrder(ctx)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	item.Order = order
	item.CreatedAt = time.Now().UTC()
	id, err := s.Insert(ctx, item)
	return id, order, err
}

// Update overwrites the editable fields of an existing about entry.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, item models.AboutItem) error {
	return s.UpdateByID(ctx, id, bson.M{
		"title":       item.Title,
		"description": item.Description,
		"icon":        item.Icon,
		"order":       item.Order,
	})
}
