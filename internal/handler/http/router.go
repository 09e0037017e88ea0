package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/handler/http/middleware"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	penaltyHandler PenaltyHandler,
	policyHandler PolicyHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "patel-backoffice"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetRange)
				r.Get("/today", attendanceHandler.GetToday)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/break/start", attendanceHandler.StartBreak)
				r.Post("/break/end", attendanceHandler.EndBreak)
				r.Post("/leave", attendanceHandler.MarkLeave)
				r.Put("/leave", attendanceHandler.EditLeave)
				r.Post("/reconcile", attendanceHandler.Reconcile)
			})

			r.Route("/penalties", func(r chi.Router) {
				r.Get("/", penaltyHandler.List)
				r.Get("/total", penaltyHandler.Total)
				r.Get("/salary", penaltyHandler.Salary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", penaltyHandler.ApplyManual)
					r.Delete("/daily", penaltyHandler.RemoveDaily)
					r.Delete("/monthly", penaltyHandler.RemoveMonthly)
					r.Delete("/{id}", penaltyHandler.Remove)
					r.Get("/settings", policyHandler.GetSettings)
					r.Put("/settings", policyHandler.UpdateSettings)
				})
			})
		})
	})
	return r
}
