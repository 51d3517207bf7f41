package credentials

import (
	"context"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CredentialController struct {
	Log               *zap.Logger
	CredentialUsecase CredentialUsecase
	RequestTimeout    time.Duration
}

func NewCredentialController(logger *zap.Logger, credentialUsecase CredentialUsecase, requestTimeoutInSeconds int) *CredentialController {
	return &CredentialController{
		Log:               logger,
		CredentialUsecase: credentialUsecase,
		RequestTimeout:    time.Duration(requestTimeoutInSeconds) * time.Second,
	}
}

// CheckCredentials starts a leaked-credentials check gated on an emailed
// operation code. Only syntax is validated here; any mailbox may ask about
// itself. Answers an empty 200 on success and a bare 400 on a malformed
// address.
func (ctrl *CredentialController) CheckCredentials(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, constvars.URLParamEmail)
	if !utils.IsValidEmail(email) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		ctrl.Log.Info("CredentialController.CheckCredentials rejected malformed email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, email),
		)
		w.WriteHeader(constvars.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	if err := ctrl.CredentialUsecase.RequestCheck(ctx, email); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	w.WriteHeader(constvars.StatusOK)
}
