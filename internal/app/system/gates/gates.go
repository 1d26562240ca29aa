// Package gates provides the handler-level authentication gate used by
// features that need the caller's identity beyond their route middleware.
// A failed gate renders the error page itself; the handler just returns.
package gates

import (
	"net/http"

	uierrors "github.com/kcmcclub/clubsite/internal/app/features/errors"
	"github.com/kcmcclub/clubsite/internal/app/system/authz"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated. If not, it renders an
// unauthorized error and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request, loginURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, loginURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}
