// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a registered club member.
//
// StudentID is expected to be unique but uniqueness is not enforced; the
// registrar resolves duplicates by hand.
type Member struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID    string             `bson:"student_id" json:"student_id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	ClassName    string             `bson:"class_name" json:"class_name"`
	Faculty      string             `bson:"faculty" json:"faculty"`
	AcademicYear string             `bson:"academic_year" json:"academic_year"`
	Status       string             `bson:"status" json:"status"`
	Activities   []string           `bson:"activities,omitempty" json:"activities,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
