// internal/app/features/sliders/new.go
package sliders

import (
	"context"
	"net/http"
	"strings"

	sliderstore "github.com/kcmcclub/clubsite/internal/app/store/sliders"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/htmlsanitize"
	"github.com/kcmcclub/clubsite/internal/app/system/imaging"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
)

type newData struct {
	formutil.DashBase
	TitleField  string
	Description string
	ImageURL    string
}

// ServeNew renders the "new slide" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := newData{}
	formutil.SetDashBase(&data.DashBase, r, "Thêm Slider", "sliders", backURL)
	templates.Render(w, r, "slider_new", data)
}

// HandleCreate processes the new-slide form.
//
// The image URL must fetch and decode as an image before anything is
// written; a slide whose URL fails the check is never stored, and the
// form is re-rendered with the draft intact.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse slider form failed", err, "Dữ liệu gửi lên không hợp lệ.", backURL)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	desc := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("description")))
	imageURL := strings.TrimSpace(r.FormValue("image_url"))

	renderWithError := func(msg string) {
		data := newData{TitleField: title, Description: desc, ImageURL: imageURL}
		formutil.SetDashBase(&data.DashBase, r, "Thêm Slider", "sliders", backURL)
		data.SetError(msg)
		templates.Render(w, r, "slider_new", data)
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

	_, _, err := sliderstore.New(h.DB).Create(ctx, models.SliderItem{
		Title:       title,
		Description: desc,
		ImageURL:    imageURL,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create slider failed", err, "Không thể lưu slide. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessCreated, http.StatusSeeOther)
}
