package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/kcmcclub/clubsite/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateSlider creates a test slide with the given title and order.
func (f *Fixtures) CreateSlider(ctx context.Context, title string, order int) models.SliderItem {
	f.t.Helper()

	s := models.SliderItem{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Mô tả " + title,
		ImageURL:    "https://img.example.com/" + title + ".jpg",
		Order:       order,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("sliders").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test slider: %v", err)
	}
	return s
}

// CreateAccount creates a test account with the given role.
func (f *Fixtures) CreateAccount(ctx context.Context, email, fullName, studentID, role string) models.Account {
	f.t.Helper()

	a := models.Account{
		ID:        primitive.NewObjectID(),
		Email:     email,
		FullName:  fullName,
		StudentID: studentID,
		Role:      role,
		Status:    models.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("accounts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}

// CreateDepartment creates a test department.
func (f *Fixtures) CreateDepartment(ctx context.Context, name, leaderName string) models.Department {
	f.t.Helper()

	d := models.Department{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Ban " + name,
		LeaderName:  leaderName,
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("departments").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test department: %v", err)
	}
	return d
}

// CreateMember creates a test member.
func (f *Fixtures) CreateMember(ctx context.Context, studentID, fullName string) models.Member {
	f.t.Helper()

	m := models.Member{
		ID:           primitive.NewObjectID(),
		StudentID:    studentID,
		FullName:     fullName,
		ClassName:    "DHKTPM15A",
		Faculty:      "Công nghệ thông tin",
		AcademicYear: "2020-2024",
		Status:       models.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}
