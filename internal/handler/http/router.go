package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/okehris/hris-backend-go/internal/handler/http/middleware"
	"github.com/okehris/hris-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	benefitHandler BenefitHandler,
	salaryHandler SalaryHandler,
	attendanceHandler AttendanceHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-okehris"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/benefits", func(r chi.Router) {
				r.Get("/", benefitHandler.List)
				r.Get("/{id}", benefitHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", benefitHandler.Create)
					r.Put("/{id}", benefitHandler.Update)
					r.Delete("/{id}", benefitHandler.Deactivate)
				})
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", salaryHandler.List)
				r.Post("/", salaryHandler.Create)
				r.Get("/{id}", salaryHandler.Get)
				r.Put("/{id}", salaryHandler.Update)
				r.Delete("/{id}", salaryHandler.Delete)
				r.Post("/{id}/approve", salaryHandler.Approve)
				r.Post("/{id}/pay", salaryHandler.MarkPaid)
				r.Get("/{id}/payslip", salaryHandler.Payslip)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/scan", attendanceHandler.Scan)
				r.Get("/report", attendanceHandler.GetReport)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/qr/{branchId}", attendanceHandler.IssueQR)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", masterHandler.ListBranches)
				r.Get("/{id}", masterHandler.GetBranch)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateBranch)
				})
			})
		})
	})
	return r
}
