package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogOutput      io.Writer // defaults to stdout
}

type Handlers struct {
	StampRequest    StampRequestHandler
	ClockEntry      ClockEntryHandler
	AttendanceStats AttendanceStatsHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "stamp-request-service"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/stamp-requests", func(r chi.Router) {
			r.Post("/", h.StampRequest.Create)
			r.Get("/my", h.StampRequest.ListMine)
			r.Get("/{id}", h.StampRequest.Get)
			r.Post("/{id}/cancel", h.StampRequest.Cancel)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/pending", h.StampRequest.ListPending)
				r.Post("/{id}/approve", h.StampRequest.Approve)
				r.Post("/{id}/reject", h.StampRequest.Reject)
				r.Post("/bulk-approve", h.StampRequest.BulkApprove)
				r.Post("/bulk-reject", h.StampRequest.BulkReject)
			})
		})

		r.Get("/clock-entries/my", h.ClockEntry.ListMine)

		r.Route("/attendance/stats", func(r chi.Router) {
			r.Get("/my", h.AttendanceStats.GetMine)
			r.With(middleware.AdminOnly).Get("/employees/{employeeID}", h.AttendanceStats.GetForEmployee)
		})
	})

	return r
}
