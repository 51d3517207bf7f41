package contracts

import (
	"context"
	"cybersentry-service/internal/app/models"
	"time"
)

// OperationRepository is the pending-operation store. Keys are code hashes;
// the raw code never reaches the repository.
type OperationRepository interface {
	// CreatePending persists a new pending operation. It returns false with a
	// nil error when the code hash is already taken by another pending
	// operation, so the caller can retry with a fresh code.
	CreatePending(ctx context.Context, operation *models.Operation, ttl time.Duration) (bool, error)

	// FindPending returns the pending operation for the hash, or nil when no
	// pending operation holds it (consumed, expired or never created).
	FindPending(ctx context.Context, codeHash string) (*models.Operation, error)

	// TakePending atomically removes and returns the pending operation for
	// the hash. Under concurrent calls for the same hash exactly one caller
	// receives the operation; the others receive nil.
	TakePending(ctx context.Context, codeHash string) (*models.Operation, error)

	// ListPendingOlderThan returns the code hashes of pending operations
	// created at or before the cutoff.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}

// OperationAuditRepository records terminal operations for retention.
type OperationAuditRepository interface {
	InsertAudit(ctx context.Context, audit *models.OperationAudit) error
}

type OperationUsecase interface {
	Create(ctx context.Context, operation *models.Operation) (code string, err error)
	Redeem(ctx context.Context, code string) (*RedeemResult, error)
	ExpireOlderThan(ctx context.Context, window time.Duration) (int, error)
}

// RedeemResult is what the redeem surface hands back to the chat client once
// the original action has been completed.
type RedeemResult struct {
	Kind        models.OperationKind
	Message     string
	DownloadURL string
	ResultToken string
}
