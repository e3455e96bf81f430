// Package stats отдаёт количество сообщений обратной связи за день, неделю и месяц.
package stats

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Response struct {
	Success bool                 `json:"success"`
	Stats   *models.ContactStats `json:"stats,omitempty"`
	Message string               `json:"message,omitempty"`
}

type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, now: time.Now}
}

// ServeHTTP godoc
// @Summary Статистика обратной связи
// @Tags Contact
// @Produce json
// @Success 200 {object} Response
// @Router /api/contact/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	st, err := h.service.Stats(r.Context(), h.now())
	if err != nil {
		log.Error("failed to compute contact stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Response{Message: "Erreur lors du calcul des statistiques"})
		return
	}

	render.JSON(w, r, Response{Success: true, Stats: &st})
}
