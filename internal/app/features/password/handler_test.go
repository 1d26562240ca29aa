package password_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	"github.com/kcmcclub/clubsite/internal/app/features/password"
	"github.com/kcmcclub/clubsite/internal/domain/models"
	"github.com/kcmcclub/clubsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*password.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := password.NewHandler(db, errLog, logger)
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

// seedUser creates a leader account with the given password and returns a
// TestUser tied to it.
func seedUser(t *testing.T, fixtures *testutil.Fixtures, ctx context.Context, pw string) testutil.TestUser {
	t.Helper()
	a := fixtures.CreateAccount(ctx, "leader@club.vn", "Người Đổi", "20110222", "leader")
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	if _, err := fixtures.DB().Collection("accounts").UpdateOne(ctx,
		bson.M{"_id": a.ID}, bson.M{"$set": bson.M{"password_hash": string(hash)}}); err != nil {
		t.Fatalf("seed hash failed: %v", err)
	}
	return testutil.TestUser{
		ID:    a.ID.Hex(),
		Name:  a.FullName,
		Email: a.Email,
		Role:  "leader",
	}
}

func storedHash(t *testing.T, fixtures *testutil.Fixtures, ctx context.Context, email string) string {
	t.Helper()
	var doc models.Account
	if err := fixtures.DB().Collection("accounts").FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	return doc.PasswordHash
}

func TestHandleChange_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := seedUser(t, fixtures, ctx, "MatKhauCu@1")

	req := testutil.NewFormRequest("/dashboard/password", map[string]string{
		"current_password": "MatKhauCu@1",
		"new_password":     "MatKhauMoi@2",
		"confirm_password": "MatKhauMoi@2",
	}, user)

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleChange, rec, req)

	hash := storedHash(t, fixtures, ctx, "leader@club.vn")
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("MatKhauMoi@2")); err != nil {
		t.Errorf("stored hash does not match the new password: %v", err)
	}
}

func TestHandleChange_WrongCurrentPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := seedUser(t, fixtures, ctx, "MatKhauCu@1")
	before := storedHash(t, fixtures, ctx, "leader@club.vn")

	req := testutil.NewFormRequest("/dashboard/password", map[string]string{
		"current_password": "sai-mat-khau",
		"new_password":     "MatKhauMoi@2",
		"confirm_password": "MatKhauMoi@2",
	}, user)

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleChange, rec, req)

	if storedHash(t, fixtures, ctx, "leader@club.vn") != before {
		t.Error("wrong current password must not change the stored hash")
	}
}

func TestHandleChange_ConfirmMismatch(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := seedUser(t, fixtures, ctx, "MatKhauCu@1")
	before := storedHash(t, fixtures, ctx, "leader@club.vn")

	req := testutil.NewFormRequest("/dashboard/password", map[string]string{
		"current_password": "MatKhauCu@1",
		"new_password":     "MatKhauMoi@2",
		"confirm_password": "MatKhauKhac@3",
	}, user)

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleChange, rec, req)

	if storedHash(t, fixtures, ctx, "leader@club.vn") != before {
		t.Error("mismatched confirmation must not change the stored hash")
	}
}

func TestHandleChange_WeakNewPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := seedUser(t, fixtures, ctx, "MatKhauCu@1")
	before := storedHash(t, fixtures, ctx, "leader@club.vn")

	// Each candidate violates one rule: length, missing upper, missing
	// lower, missing digit, missing special.
	weak := []string{
		"Ab1@x",
		"matkhau1@",
		"MATKHAU1@",
		"MatKhauMoi@",
		"MatKhauMoi2",
	}

	for _, pw := range weak {
		req := testutil.NewFormRequest("/dashboard/password", map[string]string{
			"current_password": "MatKhauCu@1",
			"new_password":     pw,
			"confirm_password": pw,
		}, user)

		rec := httptest.NewRecorder()
		callHandler(t, handler.HandleChange, rec, req)

		if storedHash(t, fixtures, ctx, "leader@club.vn") != before {
			t.Errorf("weak password %q must not change the stored hash", pw)
		}
	}
}
