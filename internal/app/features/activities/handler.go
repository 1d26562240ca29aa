// internal/app/features/activities/handler.go
package activities

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	activitystore "github.com/kcmcclub/clubsite/internal/app/store/activities"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/htmlsanitize"
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

const (
	backURL = "/dashboard/activities"

	dateLayout = "2006-01-02"
)

// Handler manages club activities (events and programs).
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
	Activities []models.Activity
	Query      string
	LoadError  bool
}

// matchActivity reports whether the folded query matches the activity's
// title or location.
func matchActivity(a models.Activity, fq string) bool {
	return strings.Contains(text.Fold(a.Title), fq) ||
		strings.Contains(text.Fold(a.Location), fq)
}

// ServeList handles GET /dashboard/activities with optional ?q= search
// over title and location.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(query.Get(r, "q"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{Query: q}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Hoạt động", "activities", backURL)

	acts, err := activitystore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list activities failed", zap.Error(err))
		data.LoadError = true
	}

	if q != "" {
		fq := text.Fold(q)
		filtered := acts[:0:0]
		for _, a := range acts {
			if matchActivity(a, fq) {
				filtered = append(filtered, a)
			}
		}
		acts = filtered
	}
	data.Activities = acts

	templates.Render(w, r, "activity_list", data)
}

type formData struct {
	formutil.DashBase
	ID          string
	TitleField  string
	Description string
	Location    string
	StartDate   string
	EndDate     string
	Status      string
	Statuses    []string
	Editing     bool
}

// ServeNew renders the "new activity" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Status: models.ActivityUpcoming, Statuses: models.ActivityStatuses}
	formutil.SetDashBase(&data.DashBase, r, "Thêm Hoạt động", "activities", backURL)
	templates.Render(w, r, "activity_form", data)
}

// parseActivityForm validates the shared create/edit fields. It returns a
// user-facing message when validation fails; the raw field values are
// always returned for re-rendering.
func parseActivityForm(r *http.Request) (models.Activity, formData, string) {
	f := formData{
		TitleField:  strings.TrimSpace(r.FormValue("title")),
		Description: htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("description"))),
		Location:    strings.TrimSpace(r.FormValue("location")),
		StartDate:   strings.TrimSpace(r.FormValue("start_date")),
		EndDate:     strings.TrimSpace(r.FormValue("end_date")),
		Status:      strings.TrimSpace(r.FormValue("status")),
		Statuses:    models.ActivityStatuses,
	}

	if f.TitleField == "" || f.StartDate == "" || f.EndDate == "" {
		return models.Activity{}, f, "Vui lòng nhập tiêu đề và thời gian diễn ra."
	}
	if !models.IsActivityStatus(f.Status) {
		return models.Activity{}, f, "Trạng thái hoạt động không hợp lệ."
	}

	start, err := time.Parse(dateLayout, f.StartDate)
	if err != nil {
		return models.Activity{}, f, "Ngày bắt đầu không hợp lệ."
	}
	end, err := time.Parse(dateLayout, f.EndDate)
	if err != nil {
		return models.Activity{}, f, "Ngày kết thúc không hợp lệ."
	}

	return models.Activity{
		Title:       f.TitleField,
		Description: f.Description,
		Location:    f.Location,
		StartDate:   start,
		EndDate:     end,
		Status:      f.Status,
	}, f, ""
}

// HandleCreate processes the new-activity form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse activity form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	act, form, msg := parseActivityForm(r)
	if msg != "" {
		formutil.SetDashBase(&form.DashBase, r, "Thêm Hoạt động", "activities", backURL)
		form.SetError(msg)
		templates.Render(w, r, "activity_form", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := activitystore.New(h.DB).Create(ctx, act); err != nil {
		h.ErrLog.LogServerError(w, r, "create activity failed", err, "Không thể lưu hoạt động. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}

// ServeEdit renders the edit form for one activity.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã hoạt động không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	act, err := activitystore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy hoạt động.", backURL)
		return
	}

	data := formData{
		ID:          act.ID.Hex(),
		TitleField:  act.Title,
		Description: act.Description,
		Location:    act.Location,
		StartDate:   act.StartDate.Format(dateLayout),
		EndDate:     act.EndDate.Format(dateLayout),
		Status:      act.Status,
		Statuses:    models.ActivityStatuses,
		Editing:     true,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa Hoạt động", "activities", backURL)
	templates.Render(w, r, "activity_form", data)
}

// HandleEdit processes the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse activity form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã hoạt động không hợp lệ.", backURL)
		return
	}

	act, form, msg := parseActivityForm(r)
	if msg != "" {
		form.ID = oid.Hex()
		form.Editing = true
		formutil.SetDashBase(&form.DashBase, r, "Sửa Hoạt động", "activities", backURL)
		form.SetError(msg)
		templates.Render(w, r, "activity_form", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := activitystore.New(h.DB).Update(ctx, oid, act); err != nil {
		h.ErrLog.LogServerError(w, r, "update activity failed", err, "Không thể lưu hoạt động. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

// HandleDelete removes an activity.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã hoạt động không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := activitystore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy hoạt động.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete activity failed", err, "Không thể xóa hoạt động. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
