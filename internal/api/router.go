package api

import (
	"net/http"
	"time"

	"stayhub/internal/api/handler"
	"stayhub/internal/api/middleware"
	"stayhub/internal/app/service"
	"stayhub/internal/common"
	"stayhub/internal/domain/repository"
	"stayhub/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	userService *service.UserService,
	roomService *service.RoomService,
	mediaService *service.MediaService,
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	rdb *redis.Client,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "Page not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "Page not found")
	})

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	auth := middleware.Authenticator(userRepo)
	owner := middleware.RoomOwner(roomRepo)
	limit := middleware.RateLimit(rdb,
		time.Duration(config.AppConfig.AuthRateLimitWindowS)*time.Second,
		config.AppConfig.AuthRateLimitMax,
	)

	userHandler := handler.NewUserHandler(userService, roomService, mediaService)
	r.Route("/user", func(u chi.Router) {
		userHandler.RegisterRoutes(u, auth, limit)
	})

	roomHandler := handler.NewRoomHandler(roomService, mediaService)
	roomHandler.RegisterRoutes(r, auth, owner)

	return r
}
