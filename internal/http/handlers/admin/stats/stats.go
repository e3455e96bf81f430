// Package stats реализует HTTP-обработчик агрегированной статистики для администратора.
package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика платформы
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminStats
// @Failure 500 {object} response.ErrorResponse "Erreur stats"
// @Router /api/admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	st, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to compute stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur stats"))
		return
	}

	render.JSON(w, r, st)
}
