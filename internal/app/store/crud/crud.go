// internal/app/store/crud/crud.go

// Package crud implements the shared collection access pattern used by
// every content store: list, get, insert, update, delete over a single
// Mongo collection, with optional ascending ordering by an integer field.
//
// The content stores are identical in shape; parameterizing one
// implementation by document type and order key keeps their list and
// ordering behavior uniform instead of copy-pasted per collection.
package crud

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection wraps one Mongo collection of documents of type T.
type Collection[T any] struct {
	c        *mongo.Collection
	orderKey string // "" sorts by _id (insertion order)
}

// New creates a Collection over db.Collection(name). If orderKey is
// non-empty, List sorts ascending by that field; NextOrder hands out
// append-to-end positions for it.
func New[T any](db *mongo.Database, name, orderKey string) *Collection[T] {
	return &Collection[T]{c: db.Collection(name), orderKey: orderKey}
}

// Mongo returns the underlying collection for bespoke queries.
func (s *Collection[T]) Mongo() *mongo.Collection { return s.c }

// List returns every document, sorted ascending by the order key when one
// is configured, otherwise by insertion order.
func (s *Collection[T]) List(ctx context.Context) ([]T, error) {
	sortKey := s.orderKey
	if sortKey == "" {
		sortKey = "_id"
	}
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the document with the given id.
func (s *Collection[T]) GetByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	var doc T
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	return doc, err
}

// Insert writes a new document and returns its assigned id.
func (s *Collection[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateByID applies a $set of fields to the document with the given id,
// stamping updated_at. This is a full overwrite of the editable fields the
// caller passes, not a merge of partial drafts.
func (s *Collection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	now := time.Now().UTC()
	fields["updated_at"] = &now
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByID removes the document with the given id. Deletes are immediate
// and irreversible; there is no soft-delete.
func (s *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *Collection[T]) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// NextOrder returns the order value for a newly created document: the
// current collection size, so new records append to the end of the list.
// Order values need not stay contiguous after deletes.
func (s *Collection[T]) NextOrder(ctx context.Context) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
