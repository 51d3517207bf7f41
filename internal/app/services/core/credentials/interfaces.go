package credentials

import "context"

type CredentialUsecase interface {
	// RequestCheck mints an operation code for a leaked-credentials check on
	// the address and mails it there.
	RequestCheck(ctx context.Context, email string) error
}
