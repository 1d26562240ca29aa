// internal/app/features/members/handler.go
package members

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	memberstore "github.com/kcmcclub/clubsite/internal/app/store/members"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/paging"
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

const backURL = "/dashboard/members"

// Handler manages the club member registry.
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
	Members   []models.Member
	Query     string
	Page      paging.Page
	PrevPage  int
	NextPage  int
	LoadError bool
}

// matchMember reports whether the folded query matches the member's
// student ID, full name or class name.
func matchMember(m models.Member, fq string) bool {
	return strings.Contains(text.Fold(m.StudentID), fq) ||
		strings.Contains(text.Fold(m.FullName), fq) ||
		strings.Contains(text.Fold(m.ClassName), fq)
}

// ServeList handles GET /dashboard/members with optional ?q= search over
// student ID, full name and class name. Search is diacritics-insensitive
// and filters the fetched list; page numbers restart when the query changes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(query.Get(r, "q"))
	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{Query: q}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Thành viên", "members", backURL)

	all, err := memberstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list members failed", zap.Error(err))
		data.LoadError = true
	}

	if q != "" {
		fq := text.Fold(q)
		filtered := all[:0:0]
		for _, m := range all {
			if matchMember(m, fq) {
				filtered = append(filtered, m)
			}
		}
		all = filtered
	}

	data.Members, data.Page = paging.Slice(all, page, paging.PageSize)
	data.PrevPage = data.Page.Number - 1
	data.NextPage = data.Page.Number + 1

	templates.Render(w, r, "member_list", data)
}

type formData struct {
	formutil.DashBase
	ID           string
	StudentID    string
	FullName     string
	ClassName    string
	Faculty      string
	AcademicYear string
	Status       string
	Activities   string
	Editing      bool
}

// ServeNew renders the "new member" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Status: models.StatusActive}
	formutil.SetDashBase(&data.DashBase, r, "Thêm Thành viên", "members", backURL)
	templates.Render(w, r, "member_form", data)
}

func parseMemberForm(r *http.Request) (models.Member, formData, string) {
	f := formData{
		StudentID:    strings.TrimSpace(r.FormValue("student_id")),
		FullName:     normalize.Name(r.FormValue("full_name")),
		ClassName:    strings.TrimSpace(r.FormValue("class_name")),
		Faculty:      strings.TrimSpace(r.FormValue("faculty")),
		AcademicYear: strings.TrimSpace(r.FormValue("academic_year")),
		Status:       strings.TrimSpace(r.FormValue("status")),
		Activities:   strings.TrimSpace(r.FormValue("activities")),
	}

	if f.StudentID == "" || f.FullName == "" {
		return models.Member{}, f, "Vui lòng nhập mã số sinh viên và họ tên."
	}
	if f.Status != models.StatusActive && f.Status != models.StatusInactive {
		return models.Member{}, f, "Trạng thái không hợp lệ."
	}

	return models.Member{
		StudentID:    f.StudentID,
		FullName:     f.FullName,
		ClassName:    f.ClassName,
		Faculty:      f.Faculty,
		AcademicYear: f.AcademicYear,
		Status:       f.Status,
		Activities:   normalize.Tags(f.Activities),
	}, f, ""
}

// HandleCreate processes the new-member form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse member form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	m, form, msg := parseMemberForm(r)
	if msg != "" {
		formutil.SetDashBase(&form.DashBase, r, "Thêm Thành viên", "members", backURL)
		form.SetError(msg)
		templates.Render(w, r, "member_form", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := memberstore.New(h.DB).Create(ctx, m); err != nil {
		h.ErrLog.LogServerError(w, r, "create member failed", err, "Không thể lưu thành viên. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}

// ServeEdit renders the edit form for one member.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã thành viên không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := memberstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy thành viên.", backURL)
		return
	}

	data := formData{
		ID:           m.ID.Hex(),
		StudentID:    m.StudentID,
		FullName:     m.FullName,
		ClassName:    m.ClassName,
		Faculty:      m.Faculty,
		AcademicYear: m.AcademicYear,
		Status:       m.Status,
		Activities:   strings.Join(m.Activities, ", "),
		Editing:      true,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa Thành viên", "members", backURL)
	templates.Render(w, r, "member_form", data)
}

// HandleEdit processes the edit form.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse member form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã thành viên không hợp lệ.", backURL)
		return
	}

	m, form, msg := parseMemberForm(r)
	if msg != "" {
		form.ID = oid.Hex()
		form.Editing = true
		formutil.SetDashBase(&form.DashBase, r, "Sửa Thành viên", "members", backURL)
		form.SetError(msg)
		templates.Render(w, r, "member_form", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := memberstore.New(h.DB).Update(ctx, oid, m); err != nil {
		h.ErrLog.LogServerError(w, r, "update member failed", err, "Không thể lưu thành viên. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

// HandleDelete removes a member.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã thành viên không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := memberstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy thành viên.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete member failed", err, "Không thể xóa thành viên. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
