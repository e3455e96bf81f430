// Package courselist реализует HTTP-обработчик полного списка курсов для администратора.
package courselist

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Response struct {
	Courses []models.Course `json:"courses"`
	Count   int             `json:"count"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /api/admin/courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.courselist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	render.JSON(w, r, Response{Courses: courses, Count: len(courses)})
}
