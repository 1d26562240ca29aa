// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	accountstore "github.com/kcmcclub/clubsite/internal/app/store/accounts"
	"github.com/kcmcclub/clubsite/internal/app/system/auth"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/ratelimit"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// loginAttempts bounds sign-in attempts per client IP.
const (
	loginAttempts = 5
	loginWindow   = time.Minute
)

type Handler struct {
	DB      *mongo.Database
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
	limiter *ratelimit.Limiter
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		ErrLog:  errLog,
		Log:     logger,
		limiter: ratelimit.New(loginAttempts, loginWindow),
	}
}

type loginData struct {
	formutil.Base
	Email  string
	Return string
}

// ServeLogin renders the sign-in form.
// Already signed-in dashboard users are sent straight to the dashboard.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok && models.IsDashboardRole(u.Role) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := loginData{Return: query.Get(r, "return")}
	formutil.SetBase(&data.Base, r, "Đăng nhập", "/")
	templates.Render(w, r, "login", data)
}

// HandleLogin verifies the submitted credentials and starts a session.
//
// Failures are reported by category so the operator can tell a typo from a
// lockout: malformed email, wrong credentials, disabled or non-dashboard
// account, and rate limiting each get their own message. The stored hash
// is never revealed; wrong-email and wrong-password share one message.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Dữ liệu gửi lên không hợp lệ.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	renderWithError := func(msg string) {
		data := loginData{Email: email, Return: ret}
		formutil.SetBase(&data.Base, r, "Đăng nhập", "/")
		data.SetError(msg)
		templates.Render(w, r, "login", data)
	}

	ip := ratelimit.ClientIP(r)
	if !h.limiter.Allow(ip) {
		h.Log.Warn("login rate limited", zap.String("ip", ip))
		renderWithError("Bạn đã thử đăng nhập quá nhiều lần. Vui lòng đợi một phút rồi thử lại.")
		return
	}

	if email == "" || password == "" {
		renderWithError("Vui lòng nhập email và mật khẩu.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		renderWithError("Địa chỉ email không hợp lệ.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	accounts := accountstore.New(h.DB)
	acct, err := accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			renderWithError("Email hoặc mật khẩu không đúng.")
			return
		}
		h.ErrLog.LogServerError(w, r, "account lookup failed", err, "Không thể đăng nhập lúc này. Vui lòng thử lại sau.", "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		renderWithError("Email hoặc mật khẩu không đúng.")
		return
	}

	if acct.Status != models.StatusActive {
		renderWithError("Tài khoản đã bị vô hiệu hóa. Vui lòng liên hệ quản trị viên.")
		return
	}
	if !models.IsDashboardRole(acct.Role) {
		renderWithError("Tài khoản không có quyền truy cập trang quản trị.")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:        acct.ID.Hex(),
		Name:      acct.FullName,
		Email:     acct.Email,
		Role:      acct.Role,
		StudentID: acct.StudentID,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Không thể đăng nhập lúc này. Vui lòng thử lại sau.", "/login")
		return
	}

	// Best effort; a failed stamp never blocks the sign-in.
	if err := accounts.TouchLastLogin(ctx, acct.ID); err != nil {
		h.Log.Warn("last login stamp failed", zap.Error(err), zap.String("account", acct.ID.Hex()))
	}

	h.limiter.Reset(ip)

	http.Redirect(w, r, safeReturn(ret), http.StatusSeeOther)
}

// safeReturn accepts only same-site relative return targets.
func safeReturn(ret string) string {
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") {
		return "/dashboard"
	}
	if u, err := url.Parse(ret); err != nil || u.Host != "" {
		return "/dashboard"
	}
	return ret
}
