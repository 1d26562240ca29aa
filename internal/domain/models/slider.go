// internal/domain/models/slider.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SliderItem is one slide of the public hero carousel.
// ImageURL points at an externally hosted image; it is verified to load as
// an image before the document is written.
type SliderItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"image_url" json:"image_url"`
	Order       int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
