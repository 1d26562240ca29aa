package menu_test

import (
	"testing"

	"github.com/kcmcclub/clubsite/internal/app/system/menu"
)

var commonIDs = []string{
	"overview", "sliders", "about", "leadership",
	"members", "departments", "activities", "password",
}

func ids(items []menu.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestForRole_Leader(t *testing.T) {
	got := ids(menu.ForRole("leader"))

	want := append(append([]string{}, commonIDs...), "profile")
	if len(got) != len(want) {
		t.Fatalf("leader menu: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leader menu[%d]: got %q, want %q", i, got[i], want[i])
		}
	}

	for _, id := range []string{"navbar", "accounts"} {
		if menu.Contains("leader", id) {
			t.Errorf("leader menu must not contain %q", id)
		}
	}
}

func TestForRole_Admin(t *testing.T) {
	want := append(append([]string{}, commonIDs...), "navbar", "accounts", "profile")
	got := ids(menu.ForRole("admin"))
	if len(got) != len(want) {
		t.Fatalf("admin menu: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("admin menu[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestForRole_SuperAdmin(t *testing.T) {
	want := append(append([]string{}, commonIDs...), "navbar", "accounts")
	got := ids(menu.ForRole("super_admin"))
	if len(got) != len(want) {
		t.Fatalf("super_admin menu: got %v, want %v", got, want)
	}
	if menu.Contains("super_admin", "profile") {
		t.Error("super_admin menu must not contain the profile editor")
	}
}

func TestForRole_OrderStable(t *testing.T) {
	for _, role := range []string{"leader", "admin", "super_admin"} {
		got := ids(menu.ForRole(role))
		for i, id := range commonIDs {
			if got[i] != id {
				t.Errorf("%s menu[%d]: got %q, want common entry %q", role, i, got[i], id)
			}
		}
	}
}
