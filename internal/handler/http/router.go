package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/mol-coffee/mol-backend-go/internal/config"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/middleware"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Profile      ProfileHandler
	Activity     ActivityHandler
	Rate         RateHandler
	Shift        ShiftHandler
	Payroll      PayrollHandler
	Notification NotificationHandler
}

// NewLogger builds the ECS-shaped JSON logger shared by the request logger and the services.
func NewLogger(app config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(app.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, profiles user.ProfileService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService, profiles))

			r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", h.Profile.Me)

			r.Route("/profiles", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProfileViewAll))
					r.Get("/", h.Profile.List)
					r.Get("/{id}", h.Profile.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProfileManage))
					r.Post("/", h.Profile.Create)
					r.Patch("/{id}", h.Profile.Update)
				})
			})

			r.Route("/activities", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionActivityView))
					r.Get("/", h.Activity.List)
					r.Get("/{id}", h.Activity.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionActivityManage))
					r.Post("/", h.Activity.Create)
					r.Put("/{id}", h.Activity.Update)
					r.Patch("/{id}/active", h.Activity.SetActive)
				})
			})

			r.Route("/rates", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRateView))
					r.Get("/", h.Rate.List)
					r.Get("/{id}", h.Rate.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRateManage))
					r.Post("/", h.Rate.Create)
					r.Put("/{id}", h.Rate.Update)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				// Employees see their own shifts; the service widens the scope for admins.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftViewOwn))
					r.Get("/", h.Shift.List)
					r.Get("/calendar.ics", h.Shift.Calendar)
					r.Get("/{id}", h.Shift.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Post("/bulk", h.Shift.BulkCreate)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollViewOwn))
					r.Get("/summary", h.Payroll.GetSummary)
					r.Get("/daily", h.Payroll.GetDailyBreakdown)
				})
				r.With(middleware.RequirePermission(user.PermissionPayrollExport)).Get("/export.xlsx", h.Payroll.Export)

				r.Route("/periods", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/", h.Payroll.ListPeriods)
					r.With(middleware.RequirePermission(user.PermissionPayrollManagePeriods)).Post("/", h.Payroll.CreatePeriod)

					r.Route("/{month}", func(r chi.Router) {
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionPayrollViewOwn))
							r.Get("/", h.Payroll.GetPeriod)
							r.Get("/confirmations", h.Payroll.ListConfirmations)
						})
						r.With(middleware.RequirePermission(user.PermissionPayrollConfirmOwn)).Post("/confirm", h.Payroll.Confirm)

						// Admin only
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionPayrollManagePeriods))
							r.Post("/close", h.Payroll.ClosePeriod)
							r.Post("/reopen", h.Payroll.ReopenPeriod)
							r.Delete("/", h.Payroll.DeletePeriod)
						})
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionPayrollManagePayment))
							r.Delete("/confirmations/{user_id}", h.Payroll.Unconfirm)
							r.Post("/confirmations/{user_id}/paid", h.Payroll.MarkPaid)
							r.Delete("/confirmations/{user_id}/paid", h.Payroll.UnmarkPaid)
						})
					})
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/preferences", h.Notification.GetPreferences)
				r.Put("/preferences", h.Notification.UpdatePreference)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})
		})
	})
	return r
}
