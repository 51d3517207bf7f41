package routers

import (
	"cybersentry-service/internal/app/delivery/http/middlewares"
	"cybersentry-service/internal/app/services/core/scans"

	"github.com/go-chi/chi/v5"
)

func attachScanRoutes(router chi.Router, middlewares *middlewares.Middlewares, scanController *scans.ScanController) {
	router.Get("/rawpages/{email}", scanController.GetRawPages)
	router.Get("/ip/{ip}", scanController.ScanIP)
	router.Get("/company", scanController.ScanCompany)
}
