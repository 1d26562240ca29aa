// internal/app/features/departments/handler.go
package departments

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	departmentstore "github.com/kcmcclub/clubsite/internal/app/store/departments"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const backURL = "/dashboard/departments"

// Handler manages the club's internal departments ("ban").
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
	Departments []models.Department
	Query       string
	LoadError   bool
}

// matchDepartment reports whether the folded query matches the
// department's name or leader name.
func matchDepartment(d models.Department, fq string) bool {
	return strings.Contains(text.Fold(d.Name), fq) ||
		strings.Contains(text.Fold(d.LeaderName), fq)
}

// ServeList handles GET /dashboard/departments with optional ?q= search
// over name and leader name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(query.Get(r, "q"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{Query: q}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Ban", "departments", backURL)

	depts, err := departmentstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list departments failed", zap.Error(err))
		data.LoadError = true
	}

	if q != "" {
		fq := text.Fold(q)
		filtered := depts[:0:0]
		for _, d := range depts {
			if matchDepartment(d, fq) {
				filtered = append(filtered, d)
			}
		}
		depts = filtered
	}
	data.Departments = depts

	templates.Render(w, r, "department_list", data)
}

type formData struct {
	formutil.DashBase
	ID          string
	Name        string
	Description string
	LeaderName  string
	Status      string
	Editing     bool
}

// ServeNew renders the "new department" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Status: models.StatusActive}
	formutil.SetDashBase(&data.DashBase, r, "Thêm Ban", "departments", backURL)
	templates.Render(w, r, "department_form", data)
}

func parseDepartmentForm(r *http.Request) (models.Department, formData, string) {
	f := formData{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		LeaderName:  normalize.Name(r.FormValue("leader_name")),
		Status:      strings.TrimSpace(r.FormValue("status")),
	}

	if f.Name == "" {
		return models.Department{}, f, "Vui lòng nhập tên ban."
	}
	if f.Status != models.StatusActive && f.Status != models.StatusInactive {
		return models.Department{}, f, "Trạng thái không hợp lệ."
	}

	return models.Department{
		Name:        f.Name,
		Description: f.Description,
		LeaderName:  f.LeaderName,
		Status:      f.Status,
	}, f, ""
}

// HandleCreate processes the new-department form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse department form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	dept, form, msg := parseDepartmentForm(r)
	if msg != "" {
		formutil.SetDashBase(&form.DashBase, r, "Thêm Ban", "departments", backURL)
		form.SetError(msg)
		templates.Render(w, r, "department_form", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := departmentstore.New(h.DB).Create(ctx, dept); err != nil {
		h.ErrLog.LogServerError(w, r, "create department failed", err, "Không thể lưu ban. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}

// ServeEdit renders the edit form for one department.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã ban không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	dept, err := departmentstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy ban.", backURL)
		return
	}

	data := formData{
		ID:          dept.ID.Hex(),
		Name:        dept.Name,
		Description: dept.Description,
		LeaderName:  dept.LeaderName,
		Status:      dept.Status,
		Editing:     true,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa Ban", "departments", backURL)
	templates.Render(w, r, "department_form", data)
}

// HandleEdit processes the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse department form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã ban không hợp lệ.", backURL)
		return
	}

	dept, form, msg := parseDepartmentForm(r)
	if msg != "" {
		form.ID = oid.Hex()
		form.Editing = true
		formutil.SetDashBase(&form.DashBase, r, "Sửa Ban", "departments", backURL)
		form.SetError(msg)
		templates.Render(w, r, "department_form", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := departmentstore.New(h.DB).Update(ctx, oid, dept); err != nil {
		h.ErrLog.LogServerError(w, r, "update department failed", err, "Không thể lưu ban. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

// HandleDelete removes a department.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã ban không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := departmentstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy ban.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete department failed", err, "Không thể xóa ban. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
