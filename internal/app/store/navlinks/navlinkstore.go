// internal/app/store/navlinks/navlinkstore.go
package navlinkstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the navbar_links collection.
type Store struct {
	*crud.Collection[models.NavLink]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.NavLink](db, "navbar_links", "order")}
}

// Create inserts a new navbar link appended to the end of the bar.
func (s *Store) Create(ctx context.Context, l models.NavLink) (primitive.ObjectID, int, error) {
	order, err := s.NextOrder(ctx)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	l.Order = order
	l.CreatedAt = time.Now().UTC()
	id, err := s.Insert(ctx, l)
	return id, order, err
}

// Update overwrites the editable fields of a navbar link.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, l models.NavLink) error {
	return s.UpdateByID(ctx, id, bson.M{
		"label":  l.Label,
		"target": l.Target,
		"order":  l.Order,
	})
}
