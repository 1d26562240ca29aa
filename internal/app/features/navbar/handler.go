// internal/app/features/navbar/handler.go
package navbar

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	navlinkstore "github.com/kcmcclub/clubsite/internal/app/store/navlinks"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const backURL = "/dashboard/navbar"

// Handler manages the public site's navigation bar links. Admin-only.
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
	Links     []models.NavLink
	LoadError bool
}

// ServeList handles GET /dashboard/navbar.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Navbar", "navbar", backURL)

	links, err := navlinkstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list nav links failed", zap.Error(err))
		data.LoadError = true
	}
	data.Links = links

	templates.Render(w, r, "navbar_list", data)
}

type formData struct {
	formutil.DashBase
	ID      string
	Label   string
	Target  string
	Order   int
	Editing bool
}

// ServeNew renders the "new link" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{}
	formutil.SetDashBase(&data.DashBase, r, "Thêm liên kết", "navbar", backURL)
	templates.Render(w, r, "navbar_form", data)
}

// HandleCreate processes the new-link form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse navbar form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	label := strings.TrimSpace(r.FormValue("label"))
	target := strings.TrimSpace(r.FormValue("target"))

	renderWithError := func(msg string) {
		data := formData{Label: label, Target: target}
		formutil.SetDashBase(&data.DashBase, r, "Thêm liên kết", "navbar", backURL)
		data.SetError(msg)
		templates.Render(w, r, "navbar_form", data)
	}

	if label == "" || target == "" {
		renderWithError("Vui lòng nhập nhãn và đường dẫn.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, _, err := navlinkstore.New(h.DB).Create(ctx, models.NavLink{Label: label, Target: target}); err != nil {
		h.ErrLog.LogServerError(w, r, "create nav link failed", err, "Không thể lưu liên kết. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}

// ServeEdit renders the edit form for one link.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã liên kết không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	l, err := navlinkstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy liên kết.", backURL)
		return
	}

	data := formData{ID: l.ID.Hex(), Label: l.Label, Target: l.Target, Order: l.Order, Editing: true}
	formutil.SetDashBase(&data.DashBase, r, "Sửa liên kết", "navbar", backURL)
	templates.Render(w, r, "navbar_form", data)
}

// HandleEdit processes the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse navbar form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã liên kết không hợp lệ.", backURL)
		return
	}

	label := strings.TrimSpace(r.FormValue("label"))
	target := strings.TrimSpace(r.FormValue("target"))
	order, _ := strconv.Atoi(r.FormValue("order"))
	if order < 0 {
		order = 0
	}

	renderWithError := func(msg string) {
		data := formData{ID: oid.Hex(), Label: label, Target: target, Order: order, Editing: true}
		formutil.SetDashBase(&data.DashBase, r, "Sửa liên kết", "navbar", backURL)
		data.SetError(msg)
		templates.Render(w, r, "navbar_form", data)
	}

	if label == "" || target == "" {
		renderWithError("Vui lòng nhập nhãn và đường dẫn.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = navlinkstore.New(h.DB).Update(ctx, oid, models.NavLink{Label: label, Target: target, Order: order})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update nav link failed", err, "Không thể lưu liên kết. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

// HandleDelete removes a link.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã liên kết không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := navlinkstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy liên kết.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete nav link failed", err, "Không thể xóa liên kết. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
