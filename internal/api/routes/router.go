package routes

import (
	"net/http"

	"github.com/servineo/backend/internal/api/handlers"
	"github.com/servineo/backend/internal/api/middleware"
	"github.com/servineo/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	serviceHandler      *handlers.ServiceHandler
	contractHandler     *handlers.ContractHandler
	notificationHandler *handlers.NotificationHandler
	reviewHandler       *handlers.ReviewHandler
	questionHandler     *handlers.QuestionHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	serviceHandler *handlers.ServiceHandler,
	contractHandler *handlers.ContractHandler,
	notificationHandler *handlers.NotificationHandler,
	reviewHandler *handlers.ReviewHandler,
	questionHandler *handlers.QuestionHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:         authHandler,
		userHandler:         userHandler,
		serviceHandler:      serviceHandler,
		contractHandler:     contractHandler,
		notificationHandler: notificationHandler,
		reviewHandler:       reviewHandler,
		questionHandler:     questionHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	// User endpoints
	r.mux.HandleFunc("GET /api/users", r.userHandler.List)
	r.mux.HandleFunc("PUT /api/users", r.userHandler.UpdateProfile)
	r.mux.HandleFunc("PUT /api/users/{id}", r.userHandler.AdminUpdate)
	r.mux.HandleFunc("DELETE /api/users/{id}", r.userHandler.Delete)

	// Service catalog endpoints
	r.mux.HandleFunc("GET /api/services", r.serviceHandler.List)
	r.mux.HandleFunc("POST /api/services", r.serviceHandler.Create)
	r.mux.HandleFunc("PUT /api/services", r.serviceHandler.Update)
	r.mux.HandleFunc("DELETE /api/services", r.serviceHandler.DeleteByQuery)
	r.mux.HandleFunc("GET /api/services/{id}", r.serviceHandler.Get)
	r.mux.HandleFunc("DELETE /api/services/{id}", r.serviceHandler.Delete)

	// Contract endpoints
	r.mux.HandleFunc("GET /api/contracts", r.contractHandler.List)
	r.mux.HandleFunc("POST /api/contracts", r.contractHandler.Hire)
	r.mux.HandleFunc("PUT /api/contracts", r.contractHandler.UpdateStatus)
	r.mux.HandleFunc("DELETE /api/contracts", r.contractHandler.Delete)

	// Favorites endpoints
	r.mux.HandleFunc("GET /api/favorites", r.userHandler.ListFavorites)
	r.mux.HandleFunc("POST /api/favorites", r.userHandler.ToggleFavorite)

	// Notification endpoints
	r.mux.HandleFunc("GET /api/notifications", r.notificationHandler.List)
	r.mux.HandleFunc("PUT /api/notifications", r.notificationHandler.MarkRead)
	r.mux.HandleFunc("DELETE /api/notifications", r.notificationHandler.Delete)

	// Review endpoints
	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.List)
	r.mux.HandleFunc("POST /api/reviews", r.reviewHandler.Create)

	// Question endpoints
	r.mux.HandleFunc("GET /api/questions", r.questionHandler.List)
	r.mux.HandleFunc("POST /api/questions", r.questionHandler.Ask)
	r.mux.HandleFunc("PUT /api/questions", r.questionHandler.Answer)

	// Apply middleware chain
	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
