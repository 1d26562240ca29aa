// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	accountstore "github.com/kcmcclub/clubsite/internal/app/store/accounts"
	"github.com/kcmcclub/clubsite/internal/app/system/auth"
	"github.com/kcmcclub/clubsite/internal/app/system/authz"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/gates"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const backURL = "/dashboard/profile"

// Handler lets leaders and admins edit their own profile. Super admins do
// not have a profile page; the component refuses them even when the URL is
// typed directly, since the profile entry is absent from their menu.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, ErrLog: errLog, Log: logger}
}

type formData struct {
	formutil.DashBase
	Email     string
	FullName  string
	StudentID string
}

// ServeForm renders the profile editor.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if !authz.CanEditProfile(r) {
		uierrors.RenderForbidden(w, r, "Tài khoản super admin không có trang thông tin cá nhân.", "/dashboard")
		return
	}

	g := gates.RequireAuth(w, r, "")
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := accountstore.New(h.DB).GetByID(ctx, g.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "account lookup failed", err, "Không thể tải thông tin cá nhân.", "/dashboard")
		return
	}

	data := formData{Email: acct.Email, FullName: acct.FullName, StudentID: acct.StudentID}
	formutil.SetDashBase(&data.DashBase, r, "Thông tin cá nhân", "profile", "/dashboard")
	templates.Render(w, r, "profile_form", data)
}

// HandleUpdate saves the profile fields and refreshes the session so the
// sidebar shows the new name immediately.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !authz.CanEditProfile(r) {
		uierrors.RenderForbidden(w, r, "Tài khoản super admin không có trang thông tin cá nhân.", "/dashboard")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	g := gates.RequireAuth(w, r, "")
	if !g.OK {
		return
	}

	email := normalize.Email(r.FormValue("email"))
	fullName := normalize.Name(r.FormValue("full_name"))
	studentID := strings.TrimSpace(r.FormValue("student_id"))

	renderWithError := func(msg string) {
		data := formData{Email: email, FullName: fullName, StudentID: studentID}
		formutil.SetDashBase(&data.DashBase, r, "Thông tin cá nhân", "profile", "/dashboard")
		data.SetError(msg)
		templates.Render(w, r, "profile_form", data)
	}

	if email == "" || fullName == "" {
		renderWithError("Vui lòng nhập email và họ tên.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		renderWithError("Địa chỉ email không hợp lệ.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := accountstore.New(h.DB)
	acct, err := store.GetByID(ctx, g.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "account lookup failed", err, "Không thể lưu thông tin cá nhân.", backURL)
		return
	}

	acct.Email = email
	acct.FullName = fullName
	acct.StudentID = studentID
	if err := store.Update(ctx, acct.ID, acct); err != nil {
		h.ErrLog.LogServerError(w, r, "profile update failed", err, "Không thể lưu thông tin cá nhân.", backURL)
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:        acct.ID.Hex(),
		Name:      acct.FullName,
		Email:     acct.Email,
		Role:      acct.Role,
		StudentID: acct.StudentID,
	}); err != nil {
		h.Log.Warn("session refresh failed", zap.Error(err))
	}

	data := formData{Email: email, FullName: fullName, StudentID: studentID}
	formutil.SetDashBase(&data.DashBase, r, "Thông tin cá nhân", "profile", "/dashboard")
	data.Success = "Lưu thông tin thành công."
	templates.Render(w, r, "profile_form", data)
}
