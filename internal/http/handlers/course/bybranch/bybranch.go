// Package bybranch реализует HTTP-обработчик списка курсов одной ветки.
package bybranch

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/catalog"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Курсы ветки
// @Description Сравнение имени ветки точное, с учётом регистра.
// @Tags Courses
// @Produce json
// @Param branch path string true "Имя ветки"
// @Success 200 {array} models.Course
// @Failure 404 {object} response.ErrorResponse "Aucun cours trouvé pour cette branche"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/courses/{branch} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.bybranch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	branch := chi.URLParam(r, "branch")
	if unescaped, err := url.PathUnescape(branch); err == nil {
		branch = unescaped
	}

	courses, err := h.service.ListCoursesByBranch(r.Context(), branch)
	switch {
	case errors.Is(err, catalog.ErrNoCourses):
		log.Info("no courses for branch", slog.String("branch", branch))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Aucun cours trouvé pour cette branche"))
		return
	case err != nil:
		log.Error("failed to list courses", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	render.JSON(w, r, courses)
}
