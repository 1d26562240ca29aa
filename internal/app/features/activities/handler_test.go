package activities_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kcmcclub/clubsite/internal/app/features/activities"
	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	"github.com/kcmcclub/clubsite/internal/domain/models"
	"github.com/kcmcclub/clubsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*activities.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := activities.NewHandler(db, errLog, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func callHandler(t *testing.T, fn http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	t.Helper()
	defer func() {
		if rec := recover(); rec != nil {
			t.Logf("recovered from panic (expected - template not initialized): %v", rec)
		}
	}()
	fn(w, r)
}

func TestHandleCreate_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewFormRequest("/dashboard/activities/new", map[string]string{
		"title":       "Workshop Git",
		"description": "Hướng dẫn Git cơ bản cho thành viên mới.",
		"location":    "Phòng A1.101",
		"start_date":  "2026-09-10",
		"end_date":    "2026-09-10",
		"status":      models.ActivityUpcoming,
	}, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	var doc models.Activity
	if err := fixtures.DB().Collection("activities").FindOne(ctx, bson.M{"title": "Workshop Git"}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if doc.Status != models.ActivityUpcoming {
		t.Errorf("status: got %q, want %q", doc.Status, models.ActivityUpcoming)
	}
	if doc.StartDate.Format("2006-01-02") != "2026-09-10" {
		t.Errorf("start date: got %v", doc.StartDate)
	}
}

func TestHandleCreate_MissingDates(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewFormRequest("/dashboard/activities/new", map[string]string{
		"title":  "Workshop Git",
		"status": models.ActivityUpcoming,
	}, testutil.AdminUser())

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleCreate, rec, req)

	count, err := fixtures.DB().Collection("activities").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no documents after missing dates, got %d", count)
	}
}

func TestHandleCreate_InvalidStatus(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewFormRequest("/dashboard/activities/new", map[string]string{
		"title":      "Workshop Git",
		"start_date": "2026-09-10",
		"end_date":   "2026-09-10",
		"status":     "postponed",
	}, testutil.AdminUser())

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleCreate, rec, req)

	count, err := fixtures.DB().Collection("activities").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no documents after invalid status, got %d", count)
	}
}

func TestHandleCreate_UnparseableDate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewFormRequest("/dashboard/activities/new", map[string]string{
		"title":      "Workshop Git",
		"start_date": "10/09/2026",
		"end_date":   "2026-09-10",
		"status":     models.ActivityUpcoming,
	}, testutil.AdminUser())

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleCreate, rec, req)

	count, err := fixtures.DB().Collection("activities").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no documents after unparseable date, got %d", count)
	}
}

func TestHandleCreate_SanitizesDescription(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewFormRequest("/dashboard/activities/new", map[string]string{
		"title":       "Hackathon 2026",
		"description": `Thi lập trình<script>alert("x")</script>`,
		"start_date":  "2026-10-01",
		"end_date":    "2026-10-02",
		"status":      models.ActivityUpcoming,
	}, testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	var doc models.Activity
	if err := fixtures.DB().Collection("activities").FindOne(ctx, bson.M{"title": "Hackathon 2026"}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if doc.Description != "Thi lập trình" {
		t.Errorf("description not sanitized: %q", doc.Description)
	}
}

func TestHandleDelete_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	createReq := testutil.NewFormRequest("/dashboard/activities/new", map[string]string{
		"title":      "Hoạt động cũ",
		"start_date": "2025-01-01",
		"end_date":   "2025-01-02",
		"status":     "completed",
	}, testutil.AdminUser())
	handler.HandleCreate(httptest.NewRecorder(), createReq)

	var doc models.Activity
	if err := fixtures.DB().Collection("activities").FindOne(ctx, bson.M{"title": "Hoạt động cũ"}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("POST", "/dashboard/activities/"+doc.ID.Hex()+"/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", doc.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	count, err := fixtures.DB().Collection("activities").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 activities after delete, got %d", count)
	}
}
