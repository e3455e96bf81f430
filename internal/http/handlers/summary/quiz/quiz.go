// Package quiz реализует HTTP-обработчик генерации квиза по курсу.
package quiz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/services/summary"
)

type Response struct {
	Quiz        *summary.Quiz `json:"quiz"`
	CourseTitle string        `json:"courseTitle"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Квиз по курсу
// @Description Пять вопросов с четырьмя вариантами ответа.
// @Tags Summary
// @Security BearerAuth
// @Produce json
// @Param courseId path string true "Идентификатор курса"
// @Success 200 {object} Response
// @Failure 404 {object} response.ErrorResponse "Cours non trouvé"
// @Failure 500 {object} response.ErrorResponse "Format de quiz invalide"
// @Router /api/summary/quiz/{courseId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.summary.quiz"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID := chi.URLParam(r, "courseId")
	q, title, err := h.service.GenerateQuiz(r.Context(), courseID)
	switch {
	case errors.Is(err, summary.ErrCourseNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Cours non trouvé"))
		return
	case errors.Is(err, summary.ErrQuizFormat):
		log.Warn("model returned malformed quiz", slog.String("course", courseID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Format de quiz invalide"))
		return
	case err != nil:
		log.Error("failed to generate quiz", slog.String("course", courseID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Erreur lors de la génération du quiz"))
		return
	}

	render.JSON(w, r, Response{Quiz: q, CourseTitle: title})
}
