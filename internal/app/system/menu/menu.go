// internal/app/system/menu/menu.go

// Package menu maps dashboard roles to their ordered sidebar entries.
// Selecting an entry is a plain navigation to the manager's path; entries
// absent from a role's menu are also unreachable through route middleware.
package menu

import "github.com/kcmcclub/clubsite/internal/domain/models"

// Item is one sidebar entry of the admin dashboard.
type Item struct {
	ID    string
	Icon  string
	Label string
	Path  string
}

var commonItems = []Item{
	{ID: "overview", Icon: "fas fa-home", Label: "Tổng quan", Path: "/dashboard"},
	{ID: "sliders", Icon: "fas fa-images", Label: "Quản lý Slider", Path: "/dashboard/sliders"},
	{ID: "about", Icon: "fas fa-info-circle", Label: "Quản lý About Us", Path: "/dashboard/about"},
	{ID: "leadership", Icon: "fas fa-users", Label: "Quản lý Leadership", Path: "/dashboard/leadership"},
	{ID: "members", Icon: "fas fa-user-friends", Label: "Quản lý Thành viên", Path: "/dashboard/members"},
	{ID: "departments", Icon: "fas fa-building", Label: "Quản lý Ban", Path: "/dashboard/departments"},
	{ID: "activities", Icon: "fas fa-calendar-alt", Label: "Quản lý Hoạt động", Path: "/dashboard/activities"},
	{ID: "password", Icon: "fas fa-key", Label: "Đổi mật khẩu", Path: "/dashboard/password"},
}

var adminOnlyItems = []Item{
	{ID: "navbar", Icon: "fas fa-bars", Label: "Quản lý Navbar", Path: "/dashboard/navbar"},
	{ID: "accounts", Icon: "fas fa-user-shield", Label: "Quản lý Tài khoản", Path: "/dashboard/accounts"},
}

var profileItem = Item{ID: "profile", Icon: "fas fa-user-circle", Label: "Thông tin cá nhân", Path: "/dashboard/profile"}

// ForRole returns the ordered menu for a dashboard role.
//
// Every dashboard role sees the common managers. Admin and super_admin add
// the navbar and accounts managers; leader and admin add the profile
// editor, which super_admin never sees (and is refused by the component
// itself when reached directly).
func ForRole(role string) []Item {
	items := make([]Item, 0, len(commonItems)+len(adminOnlyItems)+1)
	items = append(items, commonItems...)

	switch role {
	case models.RoleSuperAdmin:
		items = append(items, adminOnlyItems...)
	case models.RoleAdmin:
		items = append(items, adminOnlyItems...)
		items = append(items, profileItem)
	default:
		items = append(items, profileItem)
	}

	return items
}

// Contains reports whether the role's menu includes the entry with the
// given id.
func Contains(role, id string) bool {
	for _, it := range ForRole(role) {
		if it.ID == id {
			return true
		}
	}
	return false
}
