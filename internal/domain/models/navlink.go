// internal/domain/models/navlink.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NavLink is one entry of the public site's navigation bar.
type NavLink struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Label  string             `bson:"label" json:"label"`
	Target string             `bson:"target" json:"target"`
	Order  int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
