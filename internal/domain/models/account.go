// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStaffPassword is the reset value for leader/admin accounts.
// Member accounts reset to their student ID instead.
const DefaultStaffPassword = "Abc@kcmc2024"

// Account is a sign-in identity. Member accounts mirror the member
// registry; staff accounts (leader/admin/super_admin) unlock the dashboard.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	FullName     string             `bson:"full_name" json:"full_name"`
	StudentID    string             `bson:"student_id" json:"student_id"`
	Role         string             `bson:"role" json:"role"`
	Status       string             `bson:"status" json:"status"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ResetPasswordFor computes the reset credential for an account:
// the student ID for member accounts, the fixed staff default otherwise.
// Writing the credential back is the concern of the reset propagation
// path, not of this computation.
func ResetPasswordFor(a Account) string {
	if a.Role == RoleMember {
		return a.StudentID
	}
	return DefaultStaffPassword
}
