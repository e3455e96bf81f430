// Package coursecreate реализует HTTP-обработчик добавления курса администратором.
package coursecreate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

const errRequired = "Titre, branche et URL vidéo requis"

type Request struct {
	Title       string `json:"title" validate:"required"`
	Branch      string `json:"branch" validate:"required"`
	YoutubeURL  string `json:"youtubeUrl" validate:"required"`
	Description string `json:"description"`
}

type Response struct {
	Message string         `json:"message"`
	Course  *models.Course `json:"course"`
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
// @Summary Добавление курса
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body Request true "Курс"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Titre, branche et URL vidéo requis"
// @Router /api/admin/courses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.coursecreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Requête invalide"))
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Branch = strings.TrimSpace(req.Branch)
	req.YoutubeURL = strings.TrimSpace(req.YoutubeURL)

	if err := h.validate.Struct(req); err != nil {
		log.Info("course fields missing", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(errRequired))
		return
	}

	course, err := h.service.CreateCourse(r.Context(), models.NewCourse{
		Title:       req.Title,
		Branch:      req.Branch,
		YoutubeURL:  req.YoutubeURL,
		Description: req.Description,
	})
	if err != nil {
		log.Error("failed to create course", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur serveur"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{Message: "Cours ajouté", Course: course})
}
