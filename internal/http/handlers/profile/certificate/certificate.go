// Package certificate реализует HTTP-обработчик выдачи PDF-сертификата.
package certificate

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/profile"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сертификат о прохождении
// @Description Требует не меньше пяти пройденных курсов.
// @Tags Profile
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorResponse "Complétez au moins 5 cours pour un certificat"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/profile/certificate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.certificate"

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

	pdf, err := h.service.GenerateCertificate(r.Context(), userUID)
	switch {
	case errors.Is(err, profile.ErrNotEnoughCompleted):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Complétez au moins 5 cours pour un certificat"))
		return
	case errors.Is(err, profile.ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Utilisateur non trouvé"))
		return
	case err != nil:
		log.Error("failed to generate certificate", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur génération certificat"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=certificat.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error("failed to write certificate", sl.Err(err))
	}
}
