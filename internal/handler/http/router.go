package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/digitalis-hr/pointage-backend-go/internal/config"
	"github.com/digitalis-hr/pointage-backend-go/internal/handler/http/middleware"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Worker     WorkerHandler
	Planning   PlanningHandler
	Report     ReportHandler
	Master     MasterHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pointage-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Stored signatures and other uploaded artifacts
	fileServer(r, "/uploads", http.Dir(cfg.Storage.BasePath))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Kiosk endpoints, deliberately unauthenticated: the punch clock
		// terminal has no account of its own.
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/punch-in", h.Attendance.PunchIn)
			r.Post("/punch-out", h.Attendance.PunchOut)
			r.Get("/today", h.Attendance.Today)
		})

		// Requires an authenticated admin
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.AdminOnly)

			r.Get("/attendance/history", h.Attendance.History)
			r.Get("/attendance/history/export", h.Report.Export)

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.Get("/{code}", h.Worker.Get)
				r.Put("/{code}", h.Worker.Update)
			})

			r.Route("/planning", func(r chi.Router) {
				r.Post("/import", h.Planning.Import)
				r.Get("/week", h.Planning.Week)
			})

			r.Route("/master", func(r chi.Router) {
				r.Route("/campaigns", func(r chi.Router) {
					r.Get("/", h.Master.ListCampaigns)
					r.Post("/", h.Master.CreateCampaign)
					r.Put("/{id}", h.Master.UpdateCampaign)
					r.Delete("/{id}", h.Master.DeleteCampaign)
				})

				r.Route("/roles", func(r chi.Router) {
					r.Get("/", h.Master.ListRoles)
					r.Post("/", h.Master.CreateRole)
					r.Put("/{id}", h.Master.UpdateRole)
					r.Delete("/{id}", h.Master.DeleteRole)
				})
			})
		})
	})
	return r
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	fs := http.StripPrefix(path, http.FileServer(root))
	r.Get(path+"/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}
