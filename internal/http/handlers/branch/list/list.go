// Package list реализует HTTP-обработчик списка веток обучения.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список веток
// @Tags Branches
// @Produce json
// @Success 200 {array} models.Branch
// @Failure 500 {object} response.ErrorResponse
// @Router /api/branches [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.branch.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	branches, err := h.service.ListBranches(r.Context())
	if err != nil {
		log.Error("failed to list branches", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}

	log.Debug("branches listed", slog.Int("count", len(branches)))
	render.JSON(w, r, branches)
}
