// internal/app/features/sliders/delete.go
package sliders

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	sliderstore "github.com/kcmcclub/clubsite/internal/app/store/sliders"
	"github.com/kcmcclub/clubsite/internal/app/system/formutil"
	"github.com/kcmcclub/clubsite/internal/app/system/timeouts"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDelete removes a slide. Deletion is confirmed client-side; the
// POST itself is immediate and irreversible.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Mã slide không hợp lệ.", backURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := sliderstore.New(h.DB).DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Không tìm thấy slide.", backURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete slider failed", err, "Không thể xóa slide. Vui lòng thử lại.", backURL)
		return
	}

	http.Redirect(w, r, backURL+"?success="+formutil.SuccessDeleted, http.StatusSeeOther)
}
