// Package courseremoveall реализует HTTP-обработчик удаления всех курсов.
package courseremoveall

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
)

type Response struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление всех курсов
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /api/admin/courses/all [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.courseremoveall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	n, err := h.service.DeleteAllCourses(r.Context())
	if err != nil {
		log.Error("failed to delete courses", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	log.Warn("all courses deleted", slog.Int64("count", n))
	render.JSON(w, r, Response{Message: "Tous les cours supprimés", DeletedCount: n})
}
