// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	// GET kept for plain navigation links in the sidebar.
	r.Get("/", h.HandleLogout)
	return r
}
