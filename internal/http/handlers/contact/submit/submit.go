// Package submit принимает сообщения формы обратной связи.
//
// Тело ответа сохраняет формат клиентского приложения: поле success и список
// ошибок полей вместо общего ErrorResponse.
package submit

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/contact"
)

const successMessage = "Message envoyé avec succès ! Nous vous répondrons dans les plus brefs délais."

// Data идентификатор и время сохранённого сообщения.
type Data struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

type Response struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *Data                `json:"data,omitempty"`
	Errors  []contact.FieldError `json:"errors,omitempty"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сообщение обратной связи
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body contact.Input true "Форма"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Données invalides"
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} Response
// @Router /api/contact [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var in contact.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Response{Message: "Données invalides"})
		return
	}

	saved, err := h.service.Submit(r.Context(), in, middlewarectx.ClientIP(r))
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			log.Info("contact form rejected", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Données invalides", Errors: verr.Fields})
			return
		}
		log.Error("failed to save contact message", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Response{Message: "Erreur lors de la sauvegarde du message"})
		return
	}

	render.JSON(w, r, Response{
		Success: true,
		Message: successMessage,
		Data:    &Data{ID: saved.ID, Timestamp: saved.CreatedAt},
	})
}
