// internal/domain/models/aboutitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// About-us icon keys. Icon selects a glyph from a fixed table; anything
// outside the table renders the fallback glyph.
const (
	IconMission = "mission"
	IconVision  = "vision"
	IconValues  = "values"
)

// AboutIcons maps icon keys to their Font Awesome glyph classes.
var AboutIcons = map[string]string{
	IconMission: "fas fa-rocket",
	IconVision:  "fas fa-eye",
	IconValues:  "fas fa-users",
}

// IconFallback is rendered for unknown icon keys.
const IconFallback = "fas fa-circle"

// IconGlyph resolves an icon key to its glyph class.
func IconGlyph(key string) string {
	if g, ok := AboutIcons[key]; ok {
		return g
	}
	return IconFallback
}

// AboutItem is one entry of the public about-us section (mission, vision,
// core values and so on).
type AboutItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon" json:"icon"`
	Order       int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
