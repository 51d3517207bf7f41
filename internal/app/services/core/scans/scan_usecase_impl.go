package scans

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/dto/requests"
	"cybersentry-service/internal/pkg/dto/responses"
	"cybersentry-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type scanUsecase struct {
	operationUsecase contracts.OperationUsecase
	mailerService    contracts.MailerService
	ipFeedClient     contracts.IPFeedClient
	Log              *zap.Logger
}

func NewScanUsecase(
	operationUsecase contracts.OperationUsecase,
	mailerService contracts.MailerService,
	ipFeedClient contracts.IPFeedClient,
	logger *zap.Logger,
) ScanUsecase {
	return &scanUsecase{
		operationUsecase: operationUsecase,
		mailerService:    mailerService,
		ipFeedClient:     ipFeedClient,
		Log:              logger,
	}
}

func (uc *scanUsecase) GetRawPages(ctx context.Context, email string) (*responses.OperationResultDTO, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !utils.IsBusinessEmail(email) {
		uc.Log.Info("scanUsecase.GetRawPages rejected non-business email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, email),
		)
		return &responses.OperationResultDTO{
			OperationResult: constvars.OperationResultInvalidBusinessEmail,
		}, nil
	}

	operation := models.NewGetRawPagesOperation(email, utils.EmailDomain(email), time.Now().UTC())
	code, err := uc.operationUsecase.Create(ctx, operation)
	if err != nil {
		return nil, err
	}

	if err := uc.mailerService.SendOperationCode(ctx, email, code); err != nil {
		return nil, err
	}

	return &responses.OperationResultDTO{
		OperationResult: constvars.OperationResultRequestSent,
	}, nil
}

func (uc *scanUsecase) ScanIP(ctx context.Context, ip string) (json.RawMessage, error) {
	return uc.ipFeedClient.ScanIP(ctx, ip)
}

func (uc *scanUsecase) ScanCompany(ctx context.Context, request *requests.ScanCompany) (*responses.OperationResultDTO, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if !utils.IsBusinessEmail(request.UserEmail) || !utils.IsValidLanguageCode(request.Language) {
		uc.Log.Info("scanUsecase.ScanCompany rejected parameters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, request.UserEmail),
		)
		return &responses.OperationResultDTO{
			OperationResult: constvars.OperationResultInvalidCompanyScan,
		}, nil
	}

	domain := utils.EmailDomain(request.UserEmail)
	operation := models.NewScanCompanyOperation(
		utils.ExtractCompanyName(request.UserEmail),
		domain,
		request.UserEmail,
		request.Language,
		time.Now().UTC(),
	)
	code, err := uc.operationUsecase.Create(ctx, operation)
	if err != nil {
		return nil, err
	}

	if err := uc.mailerService.SendOperationCode(ctx, request.UserEmail, code); err != nil {
		return nil, err
	}

	return &responses.OperationResultDTO{
		OperationResult: constvars.OperationResultRequestSent,
	}, nil
}
