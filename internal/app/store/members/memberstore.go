// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the members collection.
//
// StudentID uniqueness is intentionally not checked here; see the member
// model note.
type Store struct {
	*crud.Collection[models.Member]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.Member](db, "members", "")}
}

// Create inserts a new member.
func (s *Store) Create(ctx context.Context, m models.Member) (primitive.ObjectID, error) {
	m.CreatedAt = time.Now().UTC()
	return s.Insert(ctx, m)
}

// Update overwrites the editable fields of an existing member.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Member) error {
	return s.UpdateByID(ctx, id, bson.M{
		"student_id":    m.StudentID,
		"full_name":     m.FullName,
		"class_name":    m.ClassName,
		"faculty":       m.Faculty,
		"academic_year": m.AcademicYear,
		"status":        m.Status,
		"activities":    m.Activities,
	})
}
