// internal/app/features/sliders/handler.go
package sliders

import (
	"net/http"
	"time"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the hero slider manager.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger

	// HTTPClient fetches candidate slide images for verification.
	// Tests swap in a client pointed at a local server.
	HTTPClient *http.Client
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		ErrLog:     errLog,
		Log:        logger,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

const (
	backURL = "/dashboard/sliders"

	errImageURL = "URL hình ảnh không hợp lệ hoặc không thể tải được. Vui lòng kiểm tra lại."
)
