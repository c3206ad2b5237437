package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/handler"
	"pulsecheck/internal/transport/rest/middleware"
	"pulsecheck/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	CatalogService   handler.ItemCatalog
	SelectionService handler.SessionSelector
	WSHandler        *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	itemHandler := handler.NewItemHandler(c.CatalogService)
	sessionHandler := handler.NewSessionHandler(c.SelectionService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/classify", handler.Classify).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	if c.WSHandler != nil {
		v1.HandleFunc("/ws/monitor", c.WSHandler.MonitorWS).Methods("GET")
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/auth/respondent", authHandler.IssueRespondentToken).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/items", itemHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/items", itemHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/items/import", itemHandler.Import).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/items/{itemId}", itemHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/items/{itemId}", itemHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/items/{itemId}", itemHandler.Delete).Methods("DELETE", "OPTIONS")

	// Respondent routes
	respondentRoutes := v1.NewRoute().Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/sessions/select", sessionHandler.Select).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
