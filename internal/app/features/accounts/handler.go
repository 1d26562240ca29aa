// internal/app/features/accounts/handler.go
package accounts

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	accountstore "github.com/kcmcclub/clubsite/internal/app/store/accounts"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/paging"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const backURL = "/dashboard/accounts"

// accountRoles lists the selectable roles, in display order.
var accountRoles = []string{
	models.RoleMember,
	models.RoleLeader,
	models.RoleAdmin,
	models.RoleSuperAdmin,
}

// Handler manages sign-in accounts. Reachable only by admin and
// super_admin; the route middleware enforces that.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, ErrLog: errLog, Log: logger}
}

type listData struct {
	formutil.DashBase
	Accounts  []models.Account
	Query     string
	Page      paging.Page
	PrevPage  int
	NextPage  int
	LoadError bool
}

// matchAccount reports whether the folded query matches the account's
// email, full name or student ID.
func matchAccount(a models.Account, fq string) bool {
	return strings.Contains(text.Fold(a.Email), fq) ||
		strings.Contains(text.Fold(a.FullName), fq) ||
		strings.Contains(text.Fold(a.StudentID), fq)
}

// ServeList handles GET /dashboard/accounts with optional ?q= search.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(query.Get(r, "q"))
	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{Query: q}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Tài khoản", "accounts", backURL)

	all, err := accountstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list accounts failed", zap.Error(err))
		data.LoadError = true
	}

	if q != "" {
		fq := text.Fold(q)
		filtered := all[:0:0]
		for _, a := range all {
			if matchAccount(a, fq) {
				filtered = append(filtered, a)
			}
		}
		all = filtered
	}

	data.Accounts, data.Page = paging.Slice(all, page, paging.PageSize)
	data.PrevPage = data.Page.Number - 1
	data.NextPage = data.Page.Number + 1

	templates.Render(w, r, "account_list", data)
}

type formData struct {
	formutil.DashBase
	ID        string
	Email     string
	FullName  string
	StudentID string
	RoleField string
	Status    string
	Roles     []string
	Editing   bool
}

// ServeNew renders the "new account" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{RoleField: models.RoleMember, Status: models.StatusActive, Roles: accountRoles}
	formutil.SetDashBase(&data.DashBase, r, "Thêm Tài khoản", "accounts", backURL)
	templates.Render(w, r, "account_form", data)
}

func validRole(role string) bool {
	for _, v := range accountRoles {
		if role == v {
			return true
		}
	}
	return false
}

// HandleCreate processes the new-account form. The initial password is
// hashed with bcrypt before anything is stored.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse account form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	fullName := normalize.Name(r.FormValue("full_name"))
	studentID := strings.TrimSpace(r.FormValue("student_id"))
	role := strings.TrimSpace(r.FormValue("role"))
	status := strings.TrimSpace(r.FormValue("status"))
	password := r.FormValue("password")

	renderWithError := func(msg string) {
		data := formData{
			Email: email, FullName: fullName, StudentID: studentID,
			RoleField: role, Status: status, Roles: accountRoles,
		}
		formutil.SetDashBase(&data.DashBase, r, "Thêm Tài khoản", "accounts", backURL)
		data.SetError(msg)
		templates.Render(w, r, "account_form", data)
	}

	if email == "" || fullName == "" {
		renderWithError("Vui lòng nhập email và họ tên.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		renderWithError("Địa chỉ email không hợp lệ.")
		return
	}
	if !validRole(role) {
		renderWithError("Vai trò không hợp lệ.")
		return
	}
	if status != models.StatusActive && status != models.StatusInactive {
		renderWithError("Trạng thái không hợp lệ.")
		return
	}
	if password == "" {
		password = models.ResetPasswordFor(models.Account{Role: role, StudentID: studentID})
	}
	if password == "" {
		renderWithError("Vui lòng nhập mật khẩu hoặc mã số sinh viên.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := accountstore.New(h.DB)
	if _, err := store.GetByEmail(ctx, email); err == nil {
		renderWithError("Email này đã được sử dụng.")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogServerError(w, r, "account lookup failed", err, "Không thể lưu tài khoản. Vui lòng thử lại.", backURL)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "password hash failed", err, "Không thể lưu tài khoản. Vui lòng thử lại.", backURL)
		return
	}

	_, err = store.Create(ctx, models.Account{
		Email:        email,
		FullName:     fullName,
		StudentID:    studentID,
		Role:         role,
		Status:       status,
		PasswordHash: string(hash),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create account failed", err, "Không thể lưu tài khoản. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}

// ServeEdit renders the edit form for one account.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã tài khoản không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := accountstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy tài khoản.", backURL)
		return
	}

	data := formData{
		ID:        a.ID.Hex(),
		Email:     a.Email,
		FullName:  a.FullName,
		StudentID: a.StudentID,
		RoleField: a.Role,
		Status:    a.Status,
		Roles:     accountRoles,
		Editing:   true,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa Tài khoản", "accounts", backURL)
	templates.Render(w, r, "account_form", data)
}

// HandleEdit processes the edit form. Passwords are not edited here; the
// reset action covers that.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse account form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã tài khoản không hợp lệ.", backURL)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	fullName := normalize.Name(r.FormValue("full_name"))
	studentID := strings.TrimSpace(r.FormValue("student_id"))
	role := strings.TrimSpace(r.FormValue("role"))
	status := strings.TrimSpace(r.FormValue("status"))

	renderWithError := func(msg string) {
		data := formData{
			ID:    oid.Hex(),
			Email: email, FullName: fullName, StudentID: studentID,
			RoleField: role, Status: status, Roles: accountRoles,
			Editing: true,
		}
		formutil.SetDashBase(&data.DashBase, r, "Sửa Tài khoản", "accounts", backURL)
		data.SetError(msg)
		templates.Render(w, r, "account_form", data)
	}

	if email == "" || fullName == "" {
		renderWithError("Vui lòng nhập email và họ tên.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		renderWithError("Địa chỉ email không hợp lệ.")
		return
	}
	if !validRole(role) {
		renderWithError("Vai trò không hợp lệ.")
		return
	}
	if status != models.StatusActive && status != models.StatusInactive {
		renderWithError("Trạng thái không hợp lệ.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := accountstore.New(h.DB)
	if other, err := store.GetByEmail(ctx, email); err == nil && other.ID != oid {
		renderWithError("Email này đã được sử dụng.")
		return
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogServerError(w, r, "account lookup failed", err, "Không thể lưu tài khoản. Vui lòng thử lại.", backURL)
		return
	}

	err = store.Update(ctx, oid, models.Account{
		Email:     email,
		FullName:  fullName,
		StudentID: studentID,
		Role:      role,
		Status:    status,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update account failed", err, "Không thể lưu tài khoản. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

type resetData struct {
	formutil.DashBase
	Email       string
	FullName    string
	NewPassword string
}

// HandleResetPassword computes and displays the reset credential for an
// account: the student ID for member accounts, the staff default for
// everyone else. The value is shown to the operator for out-of-band
// delivery; the stored hash is left untouched.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã tài khoản không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := accountstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy tài khoản.", backURL)
		return
	}

	// Each display gets its own audit id so operator-side reset events
	// can be correlated with the out-of-band delivery.
	h.Log.Info("reset credential displayed",
		zap.String("reset_id", uuid.NewString()),
		zap.String("account", a.ID.Hex()),
		zap.String("email", a.Email))

	data := resetData{
		Email:       a.Email,
		FullName:    a.FullName,
		NewPassword: models.ResetPasswordFor(a),
	}
	formutil.SetDashBase(&data.DashBase, r, "Đặt lại mật khẩu", "accounts", backURL)
	templates.Render(w, r, "account_reset", data)
}

// HandleDelete removes an account.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã tài khoản không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := accountstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy tài khoản.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete account failed", err, "Không thể xóa tài khoản. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
