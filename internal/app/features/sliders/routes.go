// internal/app/features/sliders/routes.go
package sliders

import "github.com/go-chi/chi/v5"

// Routes mounts the slider manager. Role gating (leader and up) is applied
// by the /dashboard mount in bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleEdit)
	r.Post("/{id}/delete", h.HandleDelete)
	return r
}
