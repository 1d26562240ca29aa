// internal/app/features/sliders/list.go
package sliders

import (
	"context"
	"net/http"

	sliderstore "github.com/kcmcclub/clubsite/internal/app/store/sliders"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type listData struct {
	formutil.DashBase
	Slides    []models.SliderItem
	LoadError bool
}

// ServeList handles GET /dashboard/sliders.
// A failed fetch renders the page with an empty table instead of an error
// page; the manager stays usable for creating new slides.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{}
	formutil.SetDashBase(&data.DashBase, r, "Quản lý Slider", "sliders", backURL)

	slides, err := sliderstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list sliders failed", zap.Error(err))
		data.LoadError = true
	}
	data.Slides = slides

	templates.Render(w, r, "slider_list", data)
}
