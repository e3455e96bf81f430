// Package complete реализует HTTP-обработчик отметки курса пройденным.
//
// Повторная отметка того же курса обновляет существующую строку прогресса:
// первая отметка отвечает 201, последующие 200.
package complete

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
	"github.com/magabrotheeeer/itlearnpro/internal/services/progress"
)

type Request struct {
	CourseID string `json:"courseId" validate:"required"`
}

type Response struct {
	Message  string           `json:"message"`
	Progress *models.Progress `json:"progress"`
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
// @Summary Отметить курс пройденным
// @Tags Progress
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body Request true "Курс"
// @Success 201 {object} Response "Создана строка прогресса"
// @Success 200 {object} Response "Строка обновлена"
// @Failure 404 {object} response.ErrorResponse "Cours non trouvé"
// @Router /api/progress [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.complete"

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

	p, created, err := h.service.MarkCompleted(r.Context(), userUID, req.CourseID)
	switch {
	case errors.Is(err, progress.ErrCourseNotFound):
		log.Info("course not found", slog.String("course", req.CourseID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Cours non trouvé"))
		return
	case err != nil:
		log.Error("failed to mark course completed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	if created {
		render.Status(r, http.StatusCreated)
	}
	log.Info("course completed", slog.String("course", req.CourseID), slog.Bool("created", created))
	render.JSON(w, r, Response{Message: "Cours marqué comme complété", Progress: p})
}
