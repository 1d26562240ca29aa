// internal/app/store/leadership/leaderstore.go
package leaderstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the leadership collection.
type Store struct {
	*crud.Collection[models.LeadershipMember]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.LeadershipMember](db, "leadership", "order")}
}

// Create inserts a new board member appended to the end of the roster.
// The caller must have compressed ImageData to the storage budget already.
func (s *Store) Create(ctx context.Context, m models.LeadershipMember) (primitive.ObjectID, int, error) {
	order, err := s.NextOrder(ctx)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	m.Order = order
	m.CreatedAt = time.Now().UTC()
	id, err := s.Insert(ctx, m)
	return id, order, err
}

// Update overwrites the editable fields of a board member. ImageData is
// only replaced when a new portrait was uploaded; an empty value keeps the
// stored one.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.LeadershipMember) error {
	fields := bson.M{
		"name":        m.Name,
		"position":    m.Position,
		"description": m.Description,
		"email":       m.Email,
		"phone":       m.Phone,
		"order":       m.Order,
	}
	if m.ImageData != "" {
		fields["image_data"] = m.ImageData
	}
	return s.UpdateByID(ctx, id, fields)
}
