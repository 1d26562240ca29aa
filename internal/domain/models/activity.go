// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity status values.
const (
	ActivityUpcoming  = "upcoming"
	ActivityOngoing   = "ongoing"
	ActivityCompleted = "completed"
	ActivityCancelled = "cancelled"
)

// ActivityStatuses lists every valid activity status, in display order.
var ActivityStatuses = []string{
	ActivityUpcoming,
	ActivityOngoing,
	ActivityCompleted,
	ActivityCancelled,
}

// IsActivityStatus reports whether s is a known activity status.
func IsActivityStatus(s string) bool {
	for _, v := range ActivityStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Activity is a club event or program.
//
// EndDate before StartDate is not rejected; the business rule is
// unspecified and the stored values are shown as entered.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date" json:"end_date"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
