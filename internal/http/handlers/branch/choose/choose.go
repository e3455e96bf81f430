// Package choose реализует HTTP-обработчик выбора ветки пользователем.
//
// В профиль записывается имя ветки, а не её идентификатор.
package choose

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
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/services/catalog"
)

type Request struct {
	BranchID string `json:"branchId" validate:"required"`
}

// Response ответ с обновлённым пользователем.
type Response struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
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
// @Summary Выбор ветки
// @Tags Branches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body Request true "Идентификатор ветки"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Branche non trouvée"
// @Router /api/branches/select [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.branch.choose"

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

	user, err := h.service.SelectBranch(r.Context(), userUID, req.BranchID)
	switch {
	case errors.Is(err, catalog.ErrBranchNotFound):
		log.Info("branch not found", slog.String("branch_id", req.BranchID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Branche non trouvée"))
		return
	case errors.Is(err, catalog.ErrUserNotFound):
		log.Info("user not found", slog.String("user", userUID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Utilisateur non trouvé"))
		return
	case err != nil:
		log.Error("failed to select branch", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	log.Info("branch selected", slog.String("user", userUID))
	render.JSON(w, r, Response{Message: "Branche sélectionnée", User: user})
}
