package itlearn

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/itlearnpro/internal/config"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/coursecreate"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/courselist"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/courseremove"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/courseremoveall"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/usercreate"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/userremove"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/admin/userremoveall"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/branch/choose"
	branchlist "github.com/magabrotheeeer/itlearnpro/internal/http/handlers/branch/list"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/contact/messages"
	contactstats "github.com/magabrotheeeer/itlearnpro/internal/http/handlers/contact/stats"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/contact/submit"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/course/bybranch"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/health"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/payment/quota"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/payment/trial"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/payment/watch"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/profile/certificate"
	profileread "github.com/magabrotheeeer/itlearnpro/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/itlearnpro/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/progress/complete"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/progress/userprogress"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/summary/generate"
	"github.com/magabrotheeeer/itlearnpro/internal/http/handlers/summary/quiz"
	"github.com/magabrotheeeer/itlearnpro/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	adminservice "github.com/magabrotheeeer/itlearnpro/internal/services/admin"
	authservice "github.com/magabrotheeeer/itlearnpro/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/itlearnpro/internal/services/catalog"
	contactservice "github.com/magabrotheeeer/itlearnpro/internal/services/contact"
	paymentservice "github.com/magabrotheeeer/itlearnpro/internal/services/payment"
	profileservice "github.com/magabrotheeeer/itlearnpro/internal/services/profile"
	progressservice "github.com/magabrotheeeer/itlearnpro/internal/services/progress"
	summaryservice "github.com/magabrotheeeer/itlearnpro/internal/services/summary"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/itlearnpro/docs"
)

// Services сервисы, которые обслуживают маршруты.
type Services struct {
	Auth     *authservice.AuthService
	Catalog  *catalogservice.CatalogService
	Progress *progressservice.ProgressService
	Profile  *profileservice.ProfileService
	Summary  *summaryservice.SummaryService
	Admin    *adminservice.AdminService
	Payment  *paymentservice.PaymentService
	Contact  *contactservice.ContactService
	DB       health.Pinger
	Metrics  *metrics.Metrics
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		s.Metrics.Middleware,
	)

	authLimiter := middlewarectx.NewIPRateLimiter(cfg.AuthLimit.RatePerMinute, cfg.AuthLimit.Burst)
	contactLimiter := middlewarectx.NewIPRateLimiter(cfg.Contact.RatePerMinute, cfg.Contact.Burst)
	authenticate := middlewarectx.JWTMiddleware(s.Auth, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(authLimiter, logger))
			r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		})

		// Открытые конечные точки
		r.Get("/branches", branchlist.New(logger, s.Catalog).ServeHTTP)
		r.Get("/courses/{branch}", bybranch.New(logger, s.Catalog).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(contactLimiter, logger)).
			Post("/contact", submit.New(logger, s.Contact).ServeHTTP)
		r.Get("/contact/messages", messages.New(logger, s.Contact).ServeHTTP)
		r.Get("/contact/stats", contactstats.New(logger, s.Contact).ServeHTTP)

		// Webhook подписан Stripe, без JWT
		r.Post("/payment/webhook", paymentwebhook.New(logger, s.Payment).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/branches/select", choose.New(logger, s.Catalog).ServeHTTP)

			r.Post("/progress", complete.New(logger, s.Progress).ServeHTTP)
			r.Get("/progress/{userId}", userprogress.New(logger, s.Progress).ServeHTTP)

			r.Get("/profile", profileread.New(logger, s.Profile).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.Profile).ServeHTTP)
			r.Post("/profile/certificate", certificate.New(logger, s.Profile).ServeHTTP)

			r.Post("/summary/generate/{courseId}", generate.New(logger, s.Summary).ServeHTTP)
			r.Post("/summary/quiz/{courseId}", quiz.New(logger, s.Summary).ServeHTTP)

			r.Post("/payment/create-checkout-session", paymentcreate.New(logger, s.Payment).ServeHTTP)
			r.Post("/payment/trial", trial.New(logger, s.Payment).ServeHTTP)
			r.Get("/payment/quota/{branch}", quota.New(logger, s.Payment).ServeHTTP)
			r.Post("/payment/watch-video", watch.New(logger, s.Payment).ServeHTTP)
		})

		// Администрирование: роль перечитывается из базы на каждом запросе
		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middlewarectx.AdminMiddleware(s.Auth, logger))

			r.Get("/users", userlist.New(logger, s.Admin).ServeHTTP)
			r.Post("/users", usercreate.New(logger, s.Admin).ServeHTTP)
			r.Delete("/users/all", userremoveall.New(logger, s.Admin).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, s.Admin).ServeHTTP)

			r.Get("/courses", courselist.New(logger, s.Catalog).ServeHTTP)
			r.Post("/courses", coursecreate.New(logger, s.Catalog).ServeHTTP)
			r.Delete("/courses/all", courseremoveall.New(logger, s.Catalog).ServeHTTP)
			r.Delete("/courses/{id}", courseremove.New(logger, s.Catalog).ServeHTTP)

			r.Get("/stats", stats.New(logger, s.Admin).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, s.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
