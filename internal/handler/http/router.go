package http

import (
	"log/slog"
	"os"

	"github.com/attendhq/payroll-engine-go/internal/handler/http/middleware"
	"github.com/attendhq/payroll-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, allowedOrigins []string, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

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

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/employees/{id}", func(r chi.Router) {
					r.Get("/payslip", payrollHandler.GetPayslip)
					r.Get("/payslip/export", payrollHandler.ExportPayslip)
				})

				r.Get("/payslips", payrollHandler.ListPayslips)

				r.Get("/policy", payrollHandler.GetPolicy)

				r.Route("/rules", func(r chi.Router) {
					r.Get("/", payrollHandler.ListBandRules)
				})

				r.Route("/penalties", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPenalties)
				})
				r.Route("/bonuses", func(r chi.Router) {
					r.Get("/", payrollHandler.ListBonuses)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)

					r.Put("/policy", payrollHandler.UpdatePolicy)

					r.Post("/rules", payrollHandler.CreateBandRule)
					r.Put("/rules/{id}", payrollHandler.UpdateBandRule)
					r.Delete("/rules/{id}", payrollHandler.DeleteBandRule)

					r.Post("/penalties", payrollHandler.CreatePenalty)
					r.Patch("/penalties/{id}/status", payrollHandler.UpdatePenaltyStatus)
					r.Delete("/penalties/{id}", payrollHandler.DeletePenalty)

					r.Post("/bonuses", payrollHandler.CreateBonus)
					r.Patch("/bonuses/{id}/status", payrollHandler.UpdateBonusStatus)
					r.Delete("/bonuses/{id}", payrollHandler.DeleteBonus)

					r.Post("/delay-permissions", payrollHandler.CreateDelayPermission)
					r.Patch("/delay-permissions/{id}/status", payrollHandler.UpdateDelayPermissionStatus)
					r.Delete("/delay-permissions/{id}", payrollHandler.DeleteDelayPermission)

					r.Post("/simulation", payrollHandler.RunSimulation)
				})
			})
		})
	})
	return r
}
