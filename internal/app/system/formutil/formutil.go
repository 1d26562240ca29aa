// Package formutil provides helpers for form re-rendering with validation
// errors: the user's previously entered values echoed back, an error
// message, and the common page context every form needs.
package formutil

import (
	"html/template"
	"net/http"

	"github.com/kcmcclub/clubsite/internal/app/system/authz"
	"github.com/kcmcclub/clubsite/internal/app/system/menu"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
)

// Success banner flags carried on the ?success= query of list redirects.
const (
	SuccessCreated = "created"
	SuccessUpdated = "updated"
	SuccessDeleted = "deleted"
)

// SuccessMessage maps the ?success= redirect flag to the localized banner
// shown on the next page. Unknown flags render nothing.
func SuccessMessage(r *http.Request) string {
	switch query.Get(r, "success") {
	case SuccessCreated:
		return "Đã tạo thành công."
	case SuccessUpdated:
		return "Đã lưu thay đổi."
	case SuccessDeleted:
		return "Đã xóa thành công."
	}
	return ""
}

// Base contains common fields for form and list pages; embed it in
// feature view models.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	Error       template.HTML
	Success     string
}

// SetBase populates the common Base fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, signedIn := authz.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = signedIn
	b.Role = role
	b.UserName = uname
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.Success = SuccessMessage(r)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

// DashBase extends Base with the dashboard sidebar for admin pages.
type DashBase struct {
	Base
	Menu   []menu.Item
	Active string // menu item id of the current manager
}

// SetDashBase populates the dashboard page context: common Base fields
// plus the sidebar menu for the signed-in user's role.
func SetDashBase(b *DashBase, r *http.Request, title, active, backDefault string) {
	SetBase(&b.Base, r, title, backDefault)
	b.Menu = menu.ForRole(b.Role)
	b.Active = active
}
