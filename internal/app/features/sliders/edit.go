// internal/app/features/sliders/edit.go
package sliders

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	sliderstore "github.com/kcmcclub/clubsite/internal/app/store/sliders"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/htmlsanitize"
	"github.com/kcmcclub/clubsite/internal/app/system/imaging"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type editData struct {
	formutil.DashBase
	ID          string
	TitleField  string
	Description string
	ImageURL    string
	Order       int
}

// ServeEdit renders the edit form for one slide.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã slide không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sl, err := sliderstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Không tìm thấy slide.", backURL)
		return
	}

	data := editData{
		ID:          sl.ID.Hex(),
		TitleField:  sl.Title,
		Description: sl.Description,
		ImageURL:    sl.ImageURL,
		Order:       sl.Order,
	}
	formutil.SetDashBase(&data.DashBase, r, "Sửa Slider", "sliders", backURL)
	templates.Render(w, r, "slider_edit", data)
}

// HandleEdit processes the edit form. The image URL is re-verified on
// every save, including saves that only change the text fields.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse slider form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã slide không hợp lệ.", backURL)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	desc := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("description")))
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	order, _ := strconv.Atoi(r.FormValue("order"))
	if order < 0 {
		order = 0
	}

	renderWithError := func(msg string) {
		data := editData{
			ID:          oid.Hex(),
			TitleField:  title,
			Description: desc,
			ImageURL:    imageURL,
			Order:       order,
		}
		formutil.SetDashBase(&data.DashBase, r, "Sửa Slider", "sliders", backURL)
		data.SetError(msg)
		templates.Render(w, r, "slider_edit", data)
	}

	if title == "" || imageURL == "" {
		renderWithError("Vui lòng nhập tiêu đề và URL hình ảnh.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := imaging.CheckImageURL(ctx, h.HTTPClient, imageURL); err != nil {
		renderWithError(errImageURL)
		return
	}

	err = sliderstore.New(h.DB).Update(ctx, oid, models.SliderItem{
		Title:       title,
		Description: desc,
		ImageURL:    imageURL,
		Order:       order,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update slider failed", err, "Không thể lưu slide. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessUpdated, http.StatusSeeOther)
}
