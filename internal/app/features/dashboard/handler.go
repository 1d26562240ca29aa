// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/kcmcclub/clubsite/internal/app/system/authz"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type overviewData struct {
	formutil.DashBase
	Sliders     int64
	AboutItems  int64
	Leadership  int64
	Members     int64
	Departments int64
	Activities  int64
	Accounts    int64
	ShowAdmin   bool
}

// ServeOverview renders the dashboard landing page with per-collection
// counts. Counts are fail-soft: a collection that cannot be counted shows
// zero and the page still renders.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := overviewData{ShowAdmin: authz.IsAdmin(r)}
	formutil.SetDashBase(&data.DashBase, r, "Tổng quan", "overview", "/dashboard")

	data.Sliders = h.count(ctx, "sliders")
	data.AboutItems = h.count(ctx, "about_items")
	data.Leadership = h.count(ctx, "leadership")
	data.Members = h.count(ctx, "members")
	data.Departments = h.count(ctx, "departments")
	data.Activities = h.count(ctx, "activities")
	if data.ShowAdmin {
		data.Accounts = h.count(ctx, "accounts")
	}

	templates.Render(w, r, "dashboard_overview", data)
}

func (h *Handler) count(ctx context.Context, coll string) int64 {
	n, err := h.DB.Collection(coll).CountDocuments(ctx, bson.M{})
	if err != nil {
		h.Log.Warn("overview count failed", zap.String("collection", coll), zap.Error(err))
		return 0
	}
	return n
}
