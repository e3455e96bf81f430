// Package paymentcreate создаёт сессию оплаты премиум-доступа к ветке.
package paymentcreate

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
	URL string `json:"url"`
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
// @Summary Сессия оплаты
// @Description Создаёт подписку Stripe на ветку. Адреса возврата строятся из заголовка Origin.
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body Request true "Ветка"
// @Success 200 {object} Response
// @Failure 500 {object} response.ErrorResponse "Erreur paiement"
// @Router /api/payment/create-checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

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

	url, err := h.service.CreateCheckoutSession(r.Context(), userUID, req.Branch, origin(r))
	switch {
	case errors.Is(err, payment.ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Utilisateur non trouvé"))
		return
	case err != nil:
		log.Error("failed to create checkout session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur paiement"))
		return
	}

	log.Info("checkout session created", slog.String("user", userUID), slog.String("branch", req.Branch))
	render.JSON(w, r, Response{URL: url})
}

// origin адрес фронтенда; без заголовка Origin берётся хост запроса.
func origin(r *http.Request) string {
	if o := r.Header.Get("Origin"); o != "" {
		return o
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
