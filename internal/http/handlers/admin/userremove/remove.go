// Package userremove реализует HTTP-обработчик удаления пользователя по идентификатору.
package userremove

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/admin"
)

type Response struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление пользователя
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Идентификатор пользователя"
// @Success 200 {object} Response
// @Failure 404 {object} response.ErrorResponse "User non trouvé"
// @Router /api/admin/users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	err := h.service.DeleteUser(r.Context(), id)
	switch {
	case errors.Is(err, admin.ErrUserNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("User non trouvé"))
		return
	case err != nil:
		log.Error("failed to delete user", slog.String("user", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	render.JSON(w, r, Response{Message: "User supprimé", UserID: id})
}
