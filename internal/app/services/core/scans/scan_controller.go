package scans

import (
	"context"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/dto/requests"
	"cybersentry-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScanController struct {
	Log            *zap.Logger
	ScanUsecase    ScanUsecase
	RequestTimeout time.Duration
}

func NewScanController(logger *zap.Logger, scanUsecase ScanUsecase, requestTimeoutInSeconds int) *ScanController {
	return &ScanController{
		Log:            logger,
		ScanUsecase:    scanUsecase,
		RequestTimeout: time.Duration(requestTimeoutInSeconds) * time.Second,
	}
}

// GetRawPages gates a leaked raw-pages report behind an emailed operation
// code. Validation rejections still answer 200 with an operationResult body;
// the chat client renders the text either way.
func (ctrl *ScanController) GetRawPages(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, constvars.URLParamEmail)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.ScanUsecase.GetRawPages(ctx, email)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildOperationResultResponse(w, result.OperationResult)
}

// ScanIP relays the threat-feed verdict for an IP. This endpoint is not
// email-gated.
func (ctrl *ScanController) ScanIP(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, constvars.URLParamIP)
	if !utils.IsValidIP(ip) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		ctrl.Log.Info("ScanController.ScanIP rejected malformed address",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIPKey, ip),
		)
		w.WriteHeader(constvars.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	payload, err := ctrl.ScanUsecase.ScanIP(ctx, ip)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.RelayJSONResponse(w, payload)
}

// ScanCompany gates an external-surface company scan. Missing query
// parameters are a hard 400; present-but-invalid ones answer 200 with the
// rejection text.
func (ctrl *ScanController) ScanCompany(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get(constvars.QueryParamUserEmail)
	language := r.URL.Query().Get(constvars.QueryParamLanguage)
	if userEmail == "" || language == "" {
		w.WriteHeader(constvars.StatusBadRequest)
		return
	}

	request := &requests.ScanCompany{
		UserEmail: userEmail,
		Language:  language,
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.ScanUsecase.ScanCompany(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildOperationResultResponse(w, result.OperationResult)
}
