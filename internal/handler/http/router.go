package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-salary-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-salary-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: logger.Schema,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			// Admin only
			r.Route("/payroll/salaries", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/preview", payrollHandler.Preview)
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/preview-all", payrollHandler.PreviewAll)
				r.Post("/calculate-all", payrollHandler.CalculateAll)

				r.Get("/", payrollHandler.ListResults)
				r.Get("/{employeeId}", payrollHandler.GetResult)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
