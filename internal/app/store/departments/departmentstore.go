// internal/app/store/departments/departmentstore.go
package departmentstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the departments collection.
type Store struct {
	*crud.Collection[models.Department]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.Department](db, "departments", "")}
}

// Create inserts a new department.
func (s *Store) Create(ctx context.Context, d models.Department) (primitive.ObjectID, error) {
	d.CreatedAt = time.Now().UTC()
	return s.Insert(ctx, d)
}

// Update overwrites the editable fields of an existing department.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, d models.Department) error {
	return s.UpdateByID(ctx, id, bson.M{
		"name":        d.Name,
		"description": d.Description,
		"leader_name": d.LeaderName,
		"status":      d.Status,
	})
}
