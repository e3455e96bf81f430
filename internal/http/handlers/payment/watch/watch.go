// Package watch учитывает просмотр видео.
//
// Квота проверяется на сервере: исчерпанный пробный период отклоняется с 403.
package watch

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/payment"
)

type Request struct {
	Branch string `json:"branch" validate:"required"`
}

type Response struct {
	VideosWatched int `json:"videosWatched"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Просмотр видео
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body Request true "Ветка"
// @Success 200 {object} Response
// @Failure 403 {object} response.ErrorResponse "Quota de vidéos gratuites épuisé"
// @Failure 404 {object} response.ErrorResponse "Subscription non trouvée"
// @Router /api/payment/watch-video [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.watch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("no user in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Accès refusé, token manquant"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Requête invalide"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		log.Error("validation crashed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	watched, err := h.service.WatchVideo(r.Context(), userUID, req.Branch)
	switch {
	case errors.Is(err, payment.ErrSubscriptionNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Subscription non trouvée"))
		return
	case errors.Is(err, payment.ErrQuotaExhausted):
		log.Info("free quota exhausted", slog.String("user", userUID), slog.String("branch", req.Branch))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("Quota de vidéos gratuites épuisé"))
		return
	case err != nil:
		log.Error("failed to count video", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur compteur"))
		return
	}

	render.JSON(w, r, Response{VideosWatched: watched})
}
