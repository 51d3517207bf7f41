package operations

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/dto/requests"
	"cybersentry-service/internal/pkg/dto/responses"
	"cybersentry-service/internal/pkg/exceptions"
	"cybersentry-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type OperationController struct {
	Log              *zap.Logger
	OperationUsecase contracts.OperationUsecase
	RequestTimeout   time.Duration
}

func NewOperationController(logger *zap.Logger, operationUsecase contracts.OperationUsecase, requestTimeoutInSeconds int) *OperationController {
	return &OperationController{
		Log:              logger,
		OperationUsecase: operationUsecase,
		RequestTimeout:   time.Duration(requestTimeoutInSeconds) * time.Second,
	}
}

// RedeemOperation accepts the code the user received by email and completes
// the operation it gates.
func (ctrl *OperationController) RedeemOperation(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RedeemOperation)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.OperationUsecase.Redeem(ctx, request.OperationCode)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OperationRedeemedSuccess, responses.RedeemOperationDTO{
		OperationResult: result.Message,
		Kind:            string(result.Kind),
		DownloadURL:     result.DownloadURL,
		ResultToken:     result.ResultToken,
	})
}
