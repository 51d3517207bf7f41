package credentials

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

type credentialUsecase struct {
	operationUsecase contracts.OperationUsecase
	mailerService    contracts.MailerService
	Log              *zap.Logger
}

func NewCredentialUsecase(
	operationUsecase contracts.OperationUsecase,
	mailerService contracts.MailerService,
	logger *zap.Logger,
) CredentialUsecase {
	return &credentialUsecase{
		operationUsecase: operationUsecase,
		mailerService:    mailerService,
		Log:              logger,
	}
}

func (uc *credentialUsecase) RequestCheck(ctx context.Context, email string) error {
	operation := models.NewCheckEmailCredentialsOperation(email, time.Now().UTC())
	code, err := uc.operationUsecase.Create(ctx, operation)
	if err != nil {
		return err
	}

	if err := uc.mailerService.SendOperationCode(ctx, email, code); err != nil {
		return err
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("credentialUsecase.RequestCheck operation code sent",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)
	return nil
}
