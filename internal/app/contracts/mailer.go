package contracts

import (
	"context"
)

// MailerService delivers operation mail out-of-band. Implementations must
// return an error when the message could not be handed off: a pending
// operation whose notification failed must not look sent to the caller.
type MailerService interface {
	SendOperationCode(ctx context.Context, to, code string) error
	SendScanResult(ctx context.Context, to, downloadURL string) error
}
