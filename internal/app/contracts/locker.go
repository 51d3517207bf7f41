package contracts

import (
	"context"
	"time"
)

// LockerService is a best-effort distributed lock on top of Redis SETNX. Used
// so only one instance runs the expiry sweep at a time.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (acquired bool, lockValue string, err error)
	Unlock(ctx context.Context, key, lockValue string) error
}
