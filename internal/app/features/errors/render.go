// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/kcmcclub/clubsite/internal/app/system/auth"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}
	if backURL == "" {
		backURL = "/login"
	}

	data := pageData{
		Title:      "Cần đăng nhập",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    "Vui lòng đăng nhập để tiếp tục.",
		BackURL:    backURL,
	}

	templates.Render(w, r, "error_forbidden", data)
}

// RenderBadRequest shows an error page for malformed input (bad IDs,
// unparseable forms) with a 400 status.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderErrorPage(w, r, http.StatusBadRequest, "Yêu cầu không hợp lệ", msg, backURL)
}

// RenderNotFound shows an error page for a missing document with a 404 status.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderErrorPage(w, r, http.StatusNotFound, "Không tìm thấy", msg, backURL)
}

// RenderServerError shows a generic failure page with a 500 status.
// Prefer ErrorLogger.LogServerError when the underlying error should be logged.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderErrorPage(w, r, http.StatusInternalServerError, "Đã xảy ra lỗi", msg, backURL)
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	w.WriteHeader(status)
	templates.Render(w, r, "error_server", pageData{
		Title:      title,
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	})
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:      "Không có quyền truy cập",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	}

	templates.Render(w, r, "error_forbidden", data)
}
