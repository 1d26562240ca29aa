package leadership_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	"github.com/kcmcclub/clubsite/internal/app/features/leadership"
	"github.com/kcmcclub/clubsite/internal/domain/models"
	"github.com/kcmcclub/clubsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*leadership.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := leadership.NewHandler(db, errLog, logger)
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

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for x := 0; x < 24; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// multipartRequest builds a multipart POST with the given text fields and
// an optional portrait file.
func multipartRequest(t *testing.T, target string, fields map[string]string, portrait []byte, user testutil.TestUser) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if portrait != nil {
		fw, err := mw.CreateFormFile("image", "chan-dung.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(portrait); err != nil {
			t.Fatalf("write portrait: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return testutil.WithUser(req, user)
}

func seedMember(t *testing.T, fixtures *testutil.Fixtures, ctx context.Context, name string) models.LeadershipMember {
	t.Helper()
	m := models.LeadershipMember{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Position:  "Chủ nhiệm",
		ImageData: "data:image/jpeg;base64,cu",
		Order:     0,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := fixtures.DB().Collection("leadership").InsertOne(ctx, m); err != nil {
		t.Fatalf("seed leadership member: %v", err)
	}
	return m
}

func TestHandleCreate_CompressesPortraitToDataURI(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := multipartRequest(t, "/dashboard/leadership/new", map[string]string{
		"name":     "Nguyễn Văn A",
		"position": "Chủ nhiệm",
		"email":    "chunhiem@club.vn",
	}, testPNG(t), testutil.AdminUser())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	var doc models.LeadershipMember
	if err := fixtures.DB().Collection("leadership").FindOne(ctx, bson.M{"name": "Nguyễn Văn A"}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if !strings.HasPrefix(doc.ImageData, "data:image/") {
		t.Errorf("portrait should be stored as a data URI, got prefix %q", doc.ImageData[:min(len(doc.ImageData), 20)])
	}
	if len(doc.ImageData) > models.MaxImageBytes {
		t.Errorf("stored portrait exceeds budget: %d bytes", len(doc.ImageData))
	}
	if doc.Order != 0 {
		t.Errorf("first member order: got %d, want 0", doc.Order)
	}
}

func TestHandleCreate_RequiresPortrait(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := multipartRequest(t, "/dashboard/leadership/new", map[string]string{
		"name":     "Không Ảnh",
		"position": "Phó chủ nhiệm",
	}, nil, testutil.AdminUser())

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleCreate, rec, req)

	count, err := fixtures.DB().Collection("leadership").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 members without portrait, got %d", count)
	}
}

func TestHandleCreate_RejectsNonImageFile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := multipartRequest(t, "/dashboard/leadership/new", map[string]string{
		"name":     "Tệp Hỏng",
		"position": "Thành viên",
	}, []byte("day khong phai la anh"), testutil.AdminUser())

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleCreate, rec, req)

	count, err := fixtures.DB().Collection("leadership").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 members for non-image upload, got %d", count)
	}
}

func TestHandleEdit_KeepsStoredPortraitWithoutFile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := seedMember(t, fixtures, ctx, "Trần Thị B")

	req := multipartRequest(t, "/dashboard/leadership/"+m.ID.Hex()+"/edit", map[string]string{
		"name":     "Trần Thị B",
		"position": "Thủ quỹ",
		"order":    "0",
	}, nil, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleEdit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	var doc models.LeadershipMember
	if err := fixtures.DB().Collection("leadership").FindOne(ctx, bson.M{"_id": m.ID}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if doc.Position != "Thủ quỹ" {
		t.Errorf("position: got %q, want %q", doc.Position, "Thủ quỹ")
	}
	if doc.ImageData != m.ImageData {
		t.Error("editing without a file must keep the stored portrait")
	}
}

func TestHandleEdit_ReplacesPortraitWithFile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := seedMember(t, fixtures, ctx, "Lê Văn C")

	req := multipartRequest(t, "/dashboard/leadership/"+m.ID.Hex()+"/edit", map[string]string{
		"name":     "Lê Văn C",
		"position": "Chủ nhiệm",
		"order":    "0",
	}, testPNG(t), testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleEdit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	var doc models.LeadershipMember
	if err := fixtures.DB().Collection("leadership").FindOne(ctx, bson.M{"_id": m.ID}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if doc.ImageData == m.ImageData {
		t.Error("uploading a new file must replace the stored portrait")
	}
	if !strings.HasPrefix(doc.ImageData, "data:image/") {
		t.Error("replacement portrait should be a data URI")
	}
}

func TestHandleDelete_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := seedMember(t, fixtures, ctx, "Người Rời")

	req := testutil.NewAuthenticatedRequest("POST", "/dashboard/leadership/"+m.ID.Hex()+"/delete", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	count, err := fixtures.DB().Collection("leadership").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 members after delete, got %d", count)
	}
}
