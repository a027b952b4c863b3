package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"vibecode/internal/pkg/auth/jwt"
	"vibecode/internal/pkg/limiter"
	"vibecode/internal/pkg/logx"
	"vibecode/internal/pkg/req"
	"vibecode/internal/pkg/resp"
)

const (
	// ProjectCreateRate throttles project creation per IP. One project every
	// twenty seconds with a small burst absorbs normal UI retries.
	ProjectCreateRate  rate.Limit = 0.05
	ProjectCreateBurst            = 2

	// SocketDialRate throttles websocket handshakes per IP.
	SocketDialRate  rate.Limit = 0.2
	SocketDialBurst            = 5
)

// Router assembles the full HTTP surface: REST API plus the collaboration
// websocket endpoint.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.Environment == "development" {
		allowedOrigins = []string{"*"}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(corsHandler.Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(req.LimitBody)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(deps.Config.Environment, deps.Config.AllowedOrigins),
	}

	createLimiter := limiter.NewIPRateLimiter(ProjectCreateRate, ProjectCreateBurst)
	dialLimiter := limiter.NewIPRateLimiter(SocketDialRate, SocketDialBurst)

	r.Get("/health", handleHealth(deps))

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", HandleRegister(deps))
			auth.Post("/login", HandleLogin(deps))
			auth.Post("/change-password", HandleChangePassword(deps))
		})

		api.Get("/user/profile", HandleGetProfile(deps))

		api.Route("/project", func(project chi.Router) {
			project.With(createLimiter.Middleware).Post("/create", HandleCreateProject(deps))
			project.Get("/list", HandleListProjects(deps))
		})

		api.Route("/file", func(file chi.Router) {
			file.Post("/presign-upload", HandlePresignUploadURL(deps))
			file.Get("/presign-download", HandlePresignDownloadURL(deps))
		})
	})

	r.Get("/ws", HandleCollabSocket(upgrader, dialLimiter, deps))

	return r
}

// originChecker builds the websocket origin policy. Development allows any
// origin so local tooling can connect.
func originChecker(environment string, allowedOrigins []string) func(r *http.Request) bool {
	if environment == "development" {
		return func(r *http.Request) bool { return true }
	}

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// handleHealth reports liveness plus live connection counts.
func handleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"status":      "ok",
			"connections": deps.Registry.ConnectionCount(),
			"rooms":       deps.Registry.RoomCount(),
		})
	}
}
