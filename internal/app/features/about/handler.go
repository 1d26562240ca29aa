// internal/app/features/about/handler.go
package about

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	aboutstore "github.com/kcmcclub/clubsite/internal/app/store/about"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/htmlsanitize"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const backURL = "/dashboard/about"

// Handler manages the public about-us entries (mission, vision, values).
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, ErrLog: errLog, Log: logger}
}

// iconOption is one entry of the icon picker.
type iconOption struct {
	Key   string
	Glyph string
}

func iconOptions() []iconOption {
	return []iconOption{
		{models.IconMission, models.AboutIcons[models.IconMission]},
		{models.IconVision, models.AboutIcons[models.IconVision]},
		{models.IconValues, models.AboutIcons[models.IconValues]},
	}
}

type listRow struct {
	models.AboutItem
	Glyph string
}

type listData struct {
	formutil.DashBase
	Items     []listRow
	LoadError bool
}

// ServeList handles GET /dashboard/about.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý About Us", "about", backURL)

	items, err := aboutstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list about items failed", zap.Error(err))
		data.LoadError = true
	}
	for _, it := range items {
		data.Items = append(data.Items, listRow{AboutItem: it, Glyph: models.IconGlyph(it.Icon)})
	}

	templates.Render(w, r, "about_list", data)
}

type formData struct {
	formutil.DashBase
	ID          string
	TitleField  string
	Description string
	Icon        string
	Order       int
	Icons       []iconOption
	Editing     bool
}

// ServeNew renders the "new entry" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Icon: models.IconMission, Icons: iconOptions()}
	formutil.SetDashBase(&data.DashBase, r, "Thêm mục About Us", "about", backURL)
	templates.Render(w, r, "about_form", data)
}

// HandleCreate processes the new-entry form. An icon key outside the fixed
// table is rejected before anything is written.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse about form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	desc := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("description")))
	icon := strings.TrimSpace(r.FormValue("icon"))

	renderWithError := func(msg string) {
		data := formData{TitleField: title, Description: desc, Icon: icon, Icons: iconOptions()}
		formutil.SetDashBase(&data.DashBase, r, "Thêm mục About Us", "about", backURL)
		data.SetError(msg)
		templates.Render(w, r, "about_form", data)
	}

	if title == "" || desc == "" {
		renderWithError("Vui lòng nhập tiêu đề và nội dung.")
		return
	}
	if _, ok := models.AboutIcons[icon]; !ok {
		renderWithError("Biểu tượng không hợp lệ.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, err := aboutstore.New(h.DB).Create(ctx, models.AboutItem{
		Title:       title,
		Description: desc,
		Icon:        icon,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create about item failed", err, "Không thể lưu mục. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}

// ServeEdit renders the edit form for one entry.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã mục không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := aboutstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy mục.", backURL)
		return
	}

	data := formData{
		ID:          item.ID.Hex(),
		TitleField:  item.Title,
		Description: item.Description,
		Icon:        item.Icon,
		Order:       item.Order,
		Icons:       iconOptions(),
		Editing:     true,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa mục About Us", "about", backURL)
	templates.Render(w, r, "about_form", data)
}

// HandleEdit processes the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse about form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã mục không hợp lệ.", backURL)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	desc := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("description")))
	icon := strings.TrimSpace(r.FormValue("icon"))
	order, _ := strconv.Atoi(r.FormValue("order"))
	if order < 0 {
		order = 0
	}

	renderWithError := func(msg string) {
		data := formData{
			ID:          oid.Hex(),
			TitleField:  title,
			Description: desc,
			Icon:        icon,
			Order:       order,
			Icons:       iconOptions(),
			Editing:     true,
		}
		formutil.SetDashBase(&data.DashBase, r, "Sửa mục About Us", "about", backURL)
		data.SetError(msg)
		templates.Render(w, r, "about_form", data)
	}

	if title == "" || desc == "" {
		renderWithError("Vui lòng nhập tiêu đề và nội dung.")
		return
	}
	if _, ok := models.AboutIcons[icon]; !ok {
		renderWithError("Biểu tượng không hợp lệ.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = aboutstore.New(h.DB).Update(ctx, oid, models.AboutItem{
		Title:       title,
		Description: desc,
		Icon:        icon,
		Order:       order,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update about item failed", err, "Không thể lưu mục. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

// HandleDelete removes an entry.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã mục không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := aboutstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy mục.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete about item failed", err, "Không thể xóa mục. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
