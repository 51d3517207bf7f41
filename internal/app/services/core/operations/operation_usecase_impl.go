package operations

import (
	"context"
	"cybersentry-service/internal/app/config"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/exceptions"
	"cybersentry-service/internal/pkg/utils"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const createMaxAttempts = 3

type operationUsecase struct {
	operationRepo  contracts.OperationRepository
	auditRepo      contracts.OperationAuditRepository
	ipFeedClient   contracts.IPFeedClient
	mailerService  contracts.MailerService
	artifacts      contracts.ArtifactStorage
	internalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewOperationUsecase(
	operationRepo contracts.OperationRepository,
	auditRepo contracts.OperationAuditRepository,
	ipFeedClient contracts.IPFeedClient,
	mailerService contracts.MailerService,
	artifacts contracts.ArtifactStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.OperationUsecase {
	return &operationUsecase{
		operationRepo:  operationRepo,
		auditRepo:      auditRepo,
		ipFeedClient:   ipFeedClient,
		mailerService:  mailerService,
		artifacts:      artifacts,
		internalConfig: internalConfig,
		Log:            logger,
	}
}

// Create mints a fresh code, persists the operation as pending and returns
// the raw code for out-of-band delivery. The pending document carries a TTL
// of twice the validity window as a backstop behind the explicit sweep.
func (uc *operationUsecase) Create(ctx context.Context, operation *models.Operation) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	window := time.Duration(uc.internalConfig.Operation.ValidityWindowInMinutes) * time.Minute
	ttl := 2 * window

	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		code, err := utils.GenerateOperationCode(uc.internalConfig.Operation.CodeLength)
		if err != nil {
			return "", exceptions.ErrServerProcess(err)
		}

		operation.CodeHash = utils.HashOperationCode(code)
		created, err := uc.operationRepo.CreatePending(ctx, operation, ttl)
		if err != nil {
			return "", err
		}
		if !created {
			// Another pending operation holds this code; retry with a
			// fresh one.
			continue
		}

		uc.Log.Info("operationUsecase.Create persisted pending operation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKindKey, string(operation.Kind)),
			zap.String(constvars.LoggingCodeHashKey, operation.CodeHash),
		)
		return code, nil
	}

	return "", exceptions.ErrOperationCodeCollision(nil)
}

// Redeem atomically consumes the pending operation matching the code and
// completes the original action. Exactly one concurrent redeem of a code can
// succeed; every other caller, and any code that is expired, consumed or was
// never issued, gets the same not-found error.
func (uc *operationUsecase) Redeem(ctx context.Context, code string) (*contracts.RedeemResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	codeHash := utils.HashOperationCode(code)

	// Read-only lookup first: consumed, expired and never-issued codes all
	// stop here, keeping code-guessing traffic off the write path. The take
	// below stays the single arbiter between concurrent winners.
	operation, err := uc.operationRepo.FindPending(ctx, codeHash)
	if err != nil {
		return nil, err
	}
	if operation == nil {
		return nil, exceptions.ErrOperationNotFound(nil)
	}

	operation, err = uc.operationRepo.TakePending(ctx, codeHash)
	if err != nil {
		return nil, err
	}
	if operation == nil {
		return nil, exceptions.ErrOperationNotFound(nil)
	}

	uc.Log.Info("operationUsecase.Redeem consumed operation",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKindKey, string(operation.Kind)),
		zap.String(constvars.LoggingCodeHashKey, codeHash),
	)

	result, execErr := uc.execute(ctx, operation)

	outcome := "completed"
	if execErr != nil {
		outcome = "failed"
	}
	uc.writeAudit(ctx, operation, models.OperationStatusConsumed, outcome)

	if execErr != nil {
		return nil, execErr
	}
	return result, nil
}

// ExpireOlderThan sweeps every pending operation older than the window into
// the expired state. Consumption races resolve in the store: whoever takes
// the document first wins, the other path simply sees nothing pending.
func (uc *operationUsecase) ExpireOlderThan(ctx context.Context, window time.Duration) (int, error) {
	cutoff := time.Now().Add(-window)
	codeHashes, err := uc.operationRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, codeHash := range codeHashes {
		operation, err := uc.operationRepo.TakePending(ctx, codeHash)
		if err != nil {
			uc.Log.Error("operationUsecase.ExpireOlderThan failed to take pending operation",
				zap.String(constvars.LoggingCodeHashKey, codeHash),
				zap.Error(err),
			)
			continue
		}
		if operation == nil {
			// Consumed (or already swept) between the range scan and the
			// take; nothing to do.
			continue
		}

		uc.writeAudit(ctx, operation, models.OperationStatusExpired, "expired")
		swept++
	}

	return swept, nil
}

func (uc *operationUsecase) execute(ctx context.Context, operation *models.Operation) (*contracts.RedeemResult, error) {
	var (
		payload json.RawMessage
		err     error
	)

	switch operation.Kind {
	case models.OperationKindCheckEmailCredentials:
		payload, err = uc.ipFeedClient.CheckCredentials(ctx, operation.Payload.Email)
	case models.OperationKindGetRawPages:
		payload, err = uc.ipFeedClient.FetchRawPages(ctx, operation.Payload.Domain)
	case models.OperationKindScanCompany:
		payload, err = uc.ipFeedClient.ScanCompany(ctx, operation.Payload.Domain, operation.Payload.Language)
	default:
		return nil, exceptions.ErrServerProcess(fmt.Errorf("unknown operation kind: %s", operation.Kind))
	}
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf(constvars.ArtifactObjectNameFormat, operation.Kind, operation.CodeHash, time.Now().UTC().Format("20060102T150405Z"))
	if err := uc.artifacts.UploadJSON(ctx, objectName, payload); err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.internalConfig.Minio.PresignedUrlExpiryTimeInHours) * time.Hour
	downloadURL, err := uc.artifacts.PresignedDownloadURL(ctx, objectName, expiry)
	if err != nil {
		return nil, err
	}

	if err := uc.mailerService.SendScanResult(ctx, operation.Payload.NotifyAddress(), downloadURL); err != nil {
		return nil, err
	}

	resultToken, err := utils.GenerateResultAccessJWT(
		operation.CodeHash,
		string(operation.Kind),
		uc.internalConfig.JWT.Secret,
		uc.internalConfig.JWT.ResultTokenExpTimeInMinutes,
	)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	return &contracts.RedeemResult{
		Kind:        operation.Kind,
		Message:     constvars.OperationResultRedeemed,
		DownloadURL: downloadURL,
		ResultToken: resultToken,
	}, nil
}

// writeAudit records the terminal transition. Audit is retention, not
// matching: a failure here is logged and must not undo the consumption,
// otherwise a storage blip would reopen a spent code.
func (uc *operationUsecase) writeAudit(ctx context.Context, operation *models.Operation, status models.OperationStatus, outcome string) {
	audit := &models.OperationAudit{
		ID:        uuid.NewString(),
		CodeHash:  operation.CodeHash,
		Kind:      operation.Kind,
		Payload:   operation.Payload,
		Status:    status,
		Outcome:   outcome,
		CreatedAt: operation.CreatedAt,
		ClosedAt:  time.Now().UTC(),
	}
	if err := uc.auditRepo.InsertAudit(ctx, audit); err != nil {
		uc.Log.Error("operationUsecase.writeAudit failed to insert audit record",
			zap.String(constvars.LoggingCodeHashKey, operation.CodeHash),
			zap.Error(err),
		)
	}
}
