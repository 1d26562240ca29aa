// internal/app/store/accounts/accountstore.go
package accountstore

import (
	"context"
	"time"

	"github.com/kcmcclub/clubsite/internal/app/store/crud"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store provides access to the accounts collection.
type Store struct {
	*crud.Collection[models.Account]
}

func New(db *mongo.Database) *Store {
	return &Store{crud.New[models.Account](db, "accounts", "")}
}

// GetByEmail looks up an account by its (normalized) email address.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	var a models.Account
	err := s.Mongo().FindOne(ctx, bson.M{"email": email}).Decode(&a)
	return a, err
}

// Create inserts a new account.
func (s *Store) Create(ctx context.Context, a models.Account) (primitive.ObjectID, error) {
	a.CreatedAt = time.Now().UTC()
	return s.Insert(ctx, a)
}

// Update overwrites the editable profile fields of an account.
// The password hash and last-login stamp have their own update paths.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, a models.Account) error {
	return s.UpdateByID(ctx, id, bson.M{
		"email":      a.Email,
		"full_name":  a.FullName,
		"student_id": a.StudentID,
		"role":       a.Role,
		"status":     a.Status,
	})
}

// UpdatePassword replaces the stored bcrypt hash.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.UpdateByID(ctx, id, bson.M{"password_hash": hash})
}

// TouchLastLogin stamps a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.Mongo().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": &now}})
	return err
}
