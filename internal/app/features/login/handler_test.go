package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	"github.com/kcmcclub/clubsite/internal/app/features/login"
	"github.com/kcmcclub/clubsite/internal/app/system/auth"
	"github.com/kcmcclub/clubsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	// Dev-mode cookie store; the weak key is fine for tests.
	if err := auth.InitSessionStore("test-session-key-for-testing-only!", "", false, logger); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	handler := login.NewHandler(db, errLog, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

// seedAccount creates an account with a real bcrypt hash, since the
// fixture helper leaves the credential empty.
func seedAccount(t *testing.T, fixtures *testutil.Fixtures, ctx context.Context, email, password, role, status string) {
	t.Helper()
	a := fixtures.CreateAccount(ctx, email, "Người Đăng Nhập", "20110111", role)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	if _, err := fixtures.DB().Collection("accounts").UpdateOne(ctx,
		bson.M{"_id": a.ID},
		bson.M{"$set": bson.M{"password_hash": string(hash), "status": status}}); err != nil {
		t.Fatalf("seed account failed: %v", err)
	}
}

// loginRequest builds an anonymous form POST; sign-in happens before any
// user exists in context.
func loginRequest(form map[string]string) *http.Request {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
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

func hasSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName {
			return true
		}
	}
	return false
}

func TestHandleLogin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "leader@club.vn", "MatKhau@2024", "leader", "active")

	req := loginRequest(map[string]string{
		"email":    "leader@club.vn",
		"password": "MatKhau@2024",
	})

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard")
	}
	if !hasSessionCookie(rec) {
		t.Error("expected session cookie to be set")
	}

	// A successful sign-in stamps last_login.
	count, err := fixtures.DB().Collection("accounts").CountDocuments(ctx,
		bson.M{"email": "leader@club.vn", "last_login": bson.M{"$exists": true}})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Error("expected last_login to be stamped after sign-in")
	}
}

func TestHandleLogin_SafeReturnURL(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "leader@club.vn", "MatKhau@2024", "leader", "active")

	req := loginRequest(map[string]string{
		"email":    "leader@club.vn",
		"password": "MatKhau@2024",
		"return":   "/dashboard/members?page=2",
	})

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/dashboard/members?page=2" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard/members?page=2")
	}
}

func TestHandleLogin_ExternalReturnURLRejected(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "leader@club.vn", "MatKhau@2024", "leader", "active")

	for _, ret := range []string{"https://evil.example/", "//evil.example/path", "evil"} {
		req := loginRequest(map[string]string{
			"email":    "leader@club.vn",
			"password": "MatKhau@2024",
			"return":   ret,
		})

		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)

		if loc := rec.Header().Get("Location"); loc != "/dashboard" {
			t.Errorf("return %q: Location got %q, want /dashboard", ret, loc)
		}
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "leader@club.vn", "MatKhau@2024", "leader", "active")

	req := loginRequest(map[string]string{
		"email":    "leader@club.vn",
		"password": "sai-mat-khau",
	})

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleLogin, rec, req)

	if hasSessionCookie(rec) {
		t.Error("wrong password must not start a session")
	}
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := loginRequest(map[string]string{
		"email":    "khongco@club.vn",
		"password": "MatKhau@2024",
	})

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleLogin, rec, req)

	if hasSessionCookie(rec) {
		t.Error("unknown email must not start a session")
	}
}

func TestHandleLogin_InactiveAccount(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "nghi@club.vn", "MatKhau@2024", "leader", "inactive")

	req := loginRequest(map[string]string{
		"email":    "nghi@club.vn",
		"password": "MatKhau@2024",
	})

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleLogin, rec, req)

	if hasSessionCookie(rec) {
		t.Error("inactive account must not start a session")
	}
}

func TestHandleLogin_MemberRoleDenied(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "sv@club.vn", "MatKhau@2024", "member", "active")

	req := loginRequest(map[string]string{
		"email":    "sv@club.vn",
		"password": "MatKhau@2024",
	})

	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleLogin, rec, req)

	if hasSessionCookie(rec) {
		t.Error("member accounts must not reach the dashboard")
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedAccount(t, fixtures, ctx, "leader@club.vn", "MatKhau@2024", "leader", "active")

	// Burn through the per-IP window with bad passwords. httptest requests
	// share a RemoteAddr, so every attempt counts against the same key.
	for i := 0; i < 5; i++ {
		req := loginRequest(map[string]string{
			"email":    "leader@club.vn",
			"password": "sai-mat-khau",
		})
		rec := httptest.NewRecorder()
		callHandler(t, handler.HandleLogin, rec, req)
	}

	// Correct credentials are refused while the window holds.
	req := loginRequest(map[string]string{
		"email":    "leader@club.vn",
		"password": "MatKhau@2024",
	})
	rec := httptest.NewRecorder()
	callHandler(t, handler.HandleLogin, rec, req)

	if hasSessionCookie(rec) {
		t.Error("rate-limited client must not start a session even with correct credentials")
	}
}
