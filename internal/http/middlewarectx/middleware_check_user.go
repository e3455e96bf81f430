package middlewarectx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itlearnpro/internal/http/response"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/services/auth"
)

// AdminMiddleware пропускает только администраторов. Ставится после JWTMiddleware.
func AdminMiddleware(users UserGetter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := UserUIDFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Accès refusé, token manquant"))
				return
			}

			user, err := users.GetUser(r.Context(), userUID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					log.Warn("token owner no longer exists", slog.String("user", userUID))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("Utilisateur non trouvé"))
					return
				}
				log.Error("failed to load user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Erreur serveur"))
				return
			}

			if user.Role != models.RoleAdmin {
				log.Warn("admin access denied", slog.String("user", userUID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Accès admin requis"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
