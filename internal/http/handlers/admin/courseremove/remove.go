// Package courseremove реализует HTTP-обработчик удаления курса по идентификатору.
package courseremove

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/catalog"
)

type Response struct {
	Message  string `json:"message"`
	CourseID string `json:"courseId"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление курса
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Идентификатор курса"
// @Success 200 {object} Response
// @Failure 404 {object} response.ErrorResponse "Cours non trouvé"
// @Router /api/admin/courses/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.courseremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	_, err := h.service.DeleteCourse(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrCourseNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Cours non trouvé"))
		return
	case err != nil:
		log.Error("failed to delete course", slog.String("course", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	log.Info("course deleted", slog.String("course", id))
	render.JSON(w, r, Response{Message: "Cours supprimé", CourseID: id})
}
