package routers

import (
	"cybersentry-service/internal/app/delivery/http/middlewares"
	"cybersentry-service/internal/app/services/core/credentials"

	"github.com/go-chi/chi/v5"
)

func attachCredentialRoutes(router chi.Router, middlewares *middlewares.Middlewares, credentialController *credentials.CredentialController) {
	router.Get("/{email}", credentialController.CheckCredentials)
}
