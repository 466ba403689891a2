package sequence

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers sequence routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sequences", func(r chi.Router) {
		r.Post("/", h.SaveSequence)
		r.Get("/user/{user_id}", h.ListUserSequences)
		r.Get("/org/{org_id}", h.ListOrgSequences)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSequence)
			r.Get("/export", h.ExportSequence)
		})
	})
}
