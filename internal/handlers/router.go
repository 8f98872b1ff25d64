package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"invoice-reconciliation-service/internal/config"
	"invoice-reconciliation-service/internal/logger"
	"invoice-reconciliation-service/internal/repositories"
	"invoice-reconciliation-service/internal/services"
)

func SetupRouter(db *sql.DB, cfg *config.Config, erp services.PurchaseOrderFetcher) *mux.Router {
	headerRepo := repositories.NewHeaderRepository(db)
	lineItemRepo := repositories.NewLineItemRepository(db)

	recordService := services.NewRecordService(headerRepo, lineItemRepo)
	correctionService := services.NewCorrectionService(lineItemRepo, erp)
	ingestionService := services.NewIngestionService(db, headerRepo, lineItemRepo)

	dataHandler := NewDataHandler(recordService, ingestionService, erp)
	correctionHandler := NewCorrectionHandler(correctionService)

	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	api.Use(requestLoggingMiddleware)
	api.Use(jsonContentTypeMiddleware)
	api.Use(authMiddleware(cfg.APIToken))

	api.HandleFunc("/header-items", dataHandler.GetHeaderItems).Methods(http.MethodGet)
	api.HandleFunc("/header-items", dataHandler.IngestHeaderItems).Methods(http.MethodPost)
	api.HandleFunc("/po-line-items", dataHandler.GetLineItems).Methods(http.MethodGet)
	api.HandleFunc("/po-line-items", dataHandler.IngestLineItems).Methods(http.MethodPost)
	api.HandleFunc("/po-line-items/{id}", correctionHandler.UpdateLineItem).Methods(http.MethodPut)
	api.HandleFunc("/purchase-orders", dataHandler.GetPurchaseOrders).Methods(http.MethodGet)
	api.HandleFunc("/summary", dataHandler.GetSummary).Methods(http.MethodGet)

	router.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)

	return router
}

func requestLoggingMiddleware(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		next.ServeHTTP(w, r)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// authMiddleware guards the API with the shared token. The token is
// accepted as "Authorization: Bearer <token>" or in X-API-Key.
func authMiddleware(apiToken string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}
			if token != apiToken {
				respondError(w, http.StatusUnauthorized, "Invalid authorization token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get("X-API-Key")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
