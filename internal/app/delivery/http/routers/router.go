package routers

import (
	"cybersentry-service/internal/app/config"
	"cybersentry-service/internal/app/delivery/http/middlewares"
	"cybersentry-service/internal/app/services/core/credentials"
	"cybersentry-service/internal/app/services/core/operations"
	"cybersentry-service/internal/app/services/core/scans"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	credentialController *credentials.CredentialController,
	scanController *scans.ScanController,
	operationController *operations.OperationController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/credentials", func(r chi.Router) {
				attachCredentialRoutes(r, middlewares, credentialController)
			})

			r.Route("/scan", func(r chi.Router) {
				attachScanRoutes(r, middlewares, scanController)
			})

			r.Route("/operations", func(r chi.Router) {
				attachOperationRoutes(r, middlewares, operationController)
			})
		})
	})
}
