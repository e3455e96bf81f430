// Package generate реализует HTTP-обработчик генерации краткого содержания курса.
package generate

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/summary"
)

type Response struct {
	Summary     string `json:"summary"`
	CourseTitle string `json:"courseTitle"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Краткое содержание курса
// @Tags Summary
// @Security BearerAuth
// @Produce json
// @Param courseId path string true "Идентификатор курса"
// @Success 200 {object} Response
// @Failure 404 {object} response.ErrorResponse "Cours non trouvé"
// @Failure 500 {object} response.ErrorResponse "Erreur lors de la génération du résumé"
// @Router /api/summary/generate/{courseId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.summary.generate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID := chi.URLParam(r, "courseId")
	text, title, err := h.service.GenerateSummary(r.Context(), courseID)
	switch {
	case errors.Is(err, summary.ErrCourseNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Cours non trouvé"))
		return
	case err != nil:
		log.Error("failed to generate summary", slog.String("course", courseID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur lors de la génération du résumé"))
		return
	}

	render.JSON(w, r, Response{Summary: text, CourseTitle: title})
}
