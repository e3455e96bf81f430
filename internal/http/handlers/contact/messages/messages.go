// Package messages отдаёт журнал сообщений обратной связи, новые первыми.
package messages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Response struct {
	Success  bool                    `json:"success"`
	Count    int                     `json:"count"`
	Messages []models.ContactMessage `json:"messages"`
	Message  string                  `json:"message,omitempty"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сообщения обратной связи
// @Tags Contact
// @Produce json
// @Success 200 {object} Response
// @Router /api/contact/messages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.messages"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	msgs, err := h.service.ListMessages(r.Context())
	if err != nil {
		log.Error("failed to list contact messages", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Response{Message: "Erreur lors de la récupération des messages"})
		return
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}

	render.JSON(w, r, Response{Success: true, Count: len(msgs), Messages: msgs})
}
