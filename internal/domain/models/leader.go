// internal/domain/models/leader.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadershipMember is a member of the club executive board shown on the
// public leadership page. ImageData holds the portrait inline as a base64
// data URI, compressed to at most MaxImageBytes before it is stored.
type LeadershipMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Position    string             `bson:"position" json:"position"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ImageData   string             `bson:"image_data" json:"image_data"`
	Order       int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// MaxImageBytes is the storage budget for an inline portrait.
const MaxImageBytes = 2 * 1024 * 1024
