package routers

import (
	"cybersentry-service/internal/app/delivery/http/middlewares"
	"cybersentry-service/internal/app/services/core/operations"

	"github.com/go-chi/chi/v5"
)

func attachOperationRoutes(router chi.Router, middlewares *middlewares.Middlewares, operationController *operations.OperationController) {
	router.Post("/redeem", operationController.RedeemOperation)
}
