package routers

import (
	"docagent/internal/handlers"
	"docagent/internal/middleware"
	"docagent/internal/models"

	"github.com/go-chi/chi/v5"
)

func APIRoutes(router *chi.Mux, generateHandler *handlers.GenerateHandler, feedbackHandler *handlers.FeedbackHandler) {
	router.Route("/api", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.GenerateRequest]()).Post("/generate", generateHandler.Generate)

		// feedback endpoints are only mounted when the history store is up
		if feedbackHandler != nil {
			r.Post("/feedback/{request_id}", feedbackHandler.SubmitFeedback)
			r.Get("/feedback/stats", feedbackHandler.GetFeedbackStats)
			r.Get("/feedback/export", feedbackHandler.ExportFeedback)
		}
	})
}
