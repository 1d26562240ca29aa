// internal/app/features/password/handler.go
package password

import (
	"context"
	"net/http"
	"unicode"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	accountstore "github.com/kcmcclub/clubsite/internal/app/store/accounts"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/gates"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const backURL = "/dashboard/password"

// Handler lets a signed-in dashboard user change their own password.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, ErrLog: errLog, Log: logger}
}

type pageData struct {
	formutil.DashBase
}

// ServeForm renders the change-password form.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	formutil.SetDashBase(&data.DashBase, r, "Đổi mật khẩu", "password", "/dashboard")
	templates.Render(w, r, "password_form", data)
}

// strongEnough enforces the password rule: at least 8 characters with an
// upper-case letter, a lower-case letter, a digit and a special character.
func strongEnough(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, c := range pw {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// HandleChange verifies the current password and stores the new bcrypt
// hash. The session stays valid; only the credential changes.
func (h *Handler) HandleChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse password form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	g := gates.RequireAuth(w, r, "")
	if !g.OK {
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	renderWithError := func(msg string) {
		data := pageData{}
		formutil.SetDashBase(&data.DashBase, r, "Đổi mật khẩu", "password", "/dashboard")
		data.SetError(msg)
		templates.Render(w, r, "password_form", data)
	}
	renderWithSuccess := func() {
		data := pageData{}
		formutil.SetDashBase(&data.DashBase, r, "Đổi mật khẩu", "password", "/dashboard")
		data.Success = "Đổi mật khẩu thành công."
		templates.Render(w, r, "password_form", data)
	}

	if current == "" || next == "" || confirm == "" {
		renderWithError("Vui lòng điền đầy đủ các trường.")
		return
	}
	if next != confirm {
		renderWithError("Mật khẩu xác nhận không khớp.")
		return
	}
	if !strongEnough(next) {
		renderWithError("Mật khẩu mới phải có ít nhất 8 ký tự, gồm chữ hoa, chữ thường, chữ số và ký tự đặc biệt.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := accountstore.New(h.DB)
	acct, err := store.GetByID(ctx, g.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "account lookup failed", err, "Không thể đổi mật khẩu lúc này. Vui lòng thử lại.", backURL)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(current)); err != nil {
		renderWithError("Mật khẩu hiện tại không đúng.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "password hash failed", err, "Không thể đổi mật khẩu lúc này. Vui lòng thử lại.", backURL)
		return
	}

	if err := store.UpdatePassword(ctx, acct.ID, string(hash)); err != nil {
		h.ErrLog.LogServerError(w, r, "password update failed", err, "Không thể đổi mật khẩu lúc này. Vui lòng thử lại.", backURL)
		return
	}

	renderWithSuccess()
}
