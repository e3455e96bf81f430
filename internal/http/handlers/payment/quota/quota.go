// Package quota возвращает остаток бесплатных просмотров на ветке.
package quota

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
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
// @Summary Квота просмотров
// @Description Для активной подписки quota равна null, unlimited равно true.
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param branch path string true "Ветка"
// @Success 200 {object} models.Quota
// @Failure 500 {object} response.ErrorResponse "Erreur quota"
// @Router /api/payment/quota/{branch} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.quota"

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

	branch := chi.URLParam(r, "branch")
	if unescaped, err := url.PathUnescape(branch); err == nil {
		branch = unescaped
	}

	q, err := h.service.Quota(r.Context(), userUID, branch)
	if err != nil {
		log.Error("failed to read quota", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur quota"))
		return
	}

	render.JSON(w, r, q)
}
