// Package userprogress реализует HTTP-обработчик чтения прогресса пользователя.
// Пользователь может читать только свой прогресс.
package userprogress

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/services/progress"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прогресс пользователя
// @Tags Progress
// @Security BearerAuth
// @Produce json
// @Param userId path string true "Идентификатор пользователя"
// @Success 200 {array} models.ProgressDetail
// @Failure 403 {object} response.ErrorResponse "Accès non autorisé"
// @Router /api/progress/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.userprogress"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerUID, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("no user in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Accès refusé, token manquant"))
		return
	}

	rows, err := h.service.GetUserProgress(r.Context(), callerUID, chi.URLParam(r, "userId"))
	switch {
	case errors.Is(err, progress.ErrForbidden):
		log.Warn("progress of another user requested", slog.String("caller", callerUID))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("Accès non autorisé"))
		return
	case err != nil:
		log.Error("failed to read progress", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}
	if rows == nil {
		rows = []models.ProgressDetail{}
	}

	render.JSON(w, r, rows)
}
