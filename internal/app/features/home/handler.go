// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	aboutstore "github.com/kcmcclub/clubsite/internal/app/store/about"
	activitystore "github.com/kcmcclub/clubsite/internal/app/store/activities"
	leaderstore "github.com/kcmcclub/clubsite/internal/app/store/leadership"
	navlinkstore "github.com/kcmcclub/clubsite/internal/app/store/navlinks"
	sliderstore "github.com/kcmcclub/clubsite/internal/app/store/sliders"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"
	"github.com/kcmcclub/clubsite/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler renders the public marketing site.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type aboutRow struct {
	models.AboutItem
	Glyph string
}

type homeData struct {
	formutil.Base
	NavLinks   []models.NavLink
	Slides     []models.SliderItem
	AboutItems []aboutRow
	Leadership []models.LeadershipMember
	Activities []models.Activity
}

// ServeHome renders the landing page. Every section is fail-soft: a
// collection that cannot be fetched renders empty while the rest of the
// page stays intact.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := homeData{}
	formutil.SetBase(&data.Base, r, "Câu lạc bộ KCMC", "/")

	if links, err := navlinkstore.New(h.DB).List(ctx); err != nil {
		h.Log.Warn("nav links fetch failed", zap.Error(err))
	} else {
		data.NavLinks = links
	}

	if slides, err := sliderstore.New(h.DB).List(ctx); err != nil {
		h.Log.Warn("sliders fetch failed", zap.Error(err))
	} else {
		data.Slides = slides
	}

	if items, err := aboutstore.New(h.DB).List(ctx); err != nil {
		h.Log.Warn("about items fetch failed", zap.Error(err))
	} else {
		for _, it := range items {
			data.AboutItems = append(data.AboutItems, aboutRow{AboutItem: it, Glyph: models.IconGlyph(it.Icon)})
		}
	}

	if leaders, err := leaderstore.New(h.DB).List(ctx); err != nil {
		h.Log.Warn("leadership fetch failed", zap.Error(err))
	} else {
		data.Leadership = leaders
	}

	if acts, err := activitystore.New(h.DB).List(ctx); err != nil {
		h.Log.Warn("activities fetch failed", zap.Error(err))
	} else {
		data.Activities = acts
	}

	templates.Render(w, r, "home", data)
}
