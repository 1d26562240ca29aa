// internal/app/features/leadership/handler.go
package leadership

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	leaderstore "github.com/kcmcclub/clubsite/internal/app/store/leadership"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/imaging"
	"github.com/kcmcclub/clubsite/internal/app/system/normalize"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	backURL = "/dashboard/leadership"

	// maxUploadBytes bounds the multipart form in memory; raw camera
	// files routinely reach this before compression.
	maxUploadBytes = 20 << 20

	errNotImage = "Tệp tải lên không phải là hình ảnh hợp lệ."
)

// Handler manages the public leadership roster. Portraits are uploaded as
// files, compressed to an inline data URI, and stored with the document.
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
	Members   []models.LeadershipMember
	LoadError bool
}

// ServeList handles GET /dashboard/leadership.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Leadership", "leadership", backURL)

	members, err := leaderstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list leadership failed", zap.Error(err))
		data.LoadError = true
	}
	data.Members = members

	templates.Render(w, r, "leadership_list", data)
}

type formData struct {
	formutil.DashBase
	ID          string
	Name        string
	Position    string
	Description string
	Email       string
	Phone       string
	ImageData   string
	Order       int
	Editing     bool
}

// ServeNew renders the "new member" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{}
	formutil.SetDashBase(&data.DashBase, r, "Thêm thành viên ban lãnh đạo", "leadership", backURL)
	templates.Render(w, r, "leadership_form", data)
}

// readPortrait pulls the optional "image" file out of the parsed multipart
// form and compresses it to a data URI. It returns "" when no file was
// submitted, and imaging.ErrNotImage when the file does not decode.
func readPortrait(r *http.Request) (string, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	res, err := imaging.Compress(file, models.MaxImageBytes)
	if err != nil {
		return "", err
	}
	return res.DataURI, nil
}

// HandleCreate processes the new-member form. A portrait is required; the
// document is written only after the image compresses successfully.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse leadership form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}
	defer cleanupMultipart(r.MultipartForm)

	name := normalize.Name(r.FormValue("name"))
	position := strings.TrimSpace(r.FormValue("position"))
	desc := strings.TrimSpace(r.FormValue("description"))
	email := normalize.Email(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))

	renderWithError := func(msg string) {
		data := formData{Name: name, Position: position, Description: desc, Email: email, Phone: phone}
		formutil.SetDashBase(&data.DashBase, r, "Thêm thành viên ban lãnh đạo", "leadership", backURL)
		data.SetError(msg)
		templates.Render(w, r, "leadership_form", data)
	}

	if name == "" || position == "" {
		renderWithError("Vui lòng nhập họ tên và chức vụ.")
		return
	}

	dataURI, err := readPortrait(r)
	if err != nil {
		if errors.Is(err, imaging.ErrNotImage) {
			renderWithError(errNotImage)
			return
		}
		h.ErrLog.LogServerError(w, r, "portrait compression failed", err, "Không thể xử lý ảnh. Vui lòng thử lại.", backURL)
		return
	}
	if dataURI == "" {
		renderWithError("Vui lòng chọn ảnh đại diện.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, _, err = leaderstore.New(h.DB).Create(ctx, models.LeadershipMember{
		Name:        name,
		Position:    position,
		Description: desc,
		Email:       email,
		Phone:       phone,
		ImageData:   dataURI,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create leadership member failed", err, "Không thể lưu thành viên. Vui lòng thử lại.", backURL)
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

	m, err := leaderstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy thành viên.", backURL)
		return
	}

	data := formData{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Position:    m.Position,
		Description: m.Description,
		Email:       m.Email,
		Phone:       m.Phone,
		ImageData:   m.ImageData,
		Order:       m.Order,
		Editing:     true,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa thành viên ban lãnh đạo", "leadership", backURL)
	templates.Render(w, r, "leadership_form", data)
}

// HandleEdit processes the edit form. Submitting without a file keeps the
// stored portrait.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse leadership form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}
	defer cleanupMultipart(r.MultipartForm)

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã thành viên không hợp lệ.", backURL)
		return
	}

	name := normalize.Name(r.FormValue("name"))
	position := strings.TrimSpace(r.FormValue("position"))
	desc := strings.TrimSpace(r.FormValue("description"))
	email := normalize.Email(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	order, _ := strconv.Atoi(r.FormValue("order"))
	if order < 0 {
		order = 0
	}

	renderWithError := func(msg string) {
		data := formData{
			ID:       oid.Hex(),
			Name:     name,
			Position: position, Description: desc,
			Email: email, Phone: phone,
			Order:   order,
			Editing: true,
		}
		formutil.SetDashBase(&data.DashBase, r, "Sửa thành viên ban lãnh đạo", "leadership", backURL)
		data.SetError(msg)
		templates.Render(w, r, "leadership_form", data)
	}

	if name == "" || position == "" {
		renderWithError("Vui lòng nhập họ tên và chức vụ.")
		return
	}

	dataURI, err := readPortrait(r)
	if err != nil {
		if errors.Is(err, imaging.ErrNotImage) {
			renderWithError(errNotImage)
			return
		}
		h.ErrLog.LogServerError(w, r, "portrait compression failed", err, "Không thể xử lý ảnh. Vui lòng thử lại.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Empty dataURI leaves the stored portrait untouched; the store only
	// writes image_data when a new one is present.
	err = leaderstore.New(h.DB).Update(ctx, oid, models.LeadershipMember{
		Name:        name,
		Position:    position,
		Description: desc,
		Email:       email,
		Phone:       phone,
		ImageData:   dataURI,
		Order:       order,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update leadership member failed", err, "Không thể lưu thành viên. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}

// HandleDelete removes a member from the roster.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã thành viên không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := leaderstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy thành viên.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete leadership member failed", err, "Không thể xóa thành viên. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}

func cleanupMultipart(f *multipart.Form) {
	if f != nil {
		_ = f.RemoveAll()
	}
}
