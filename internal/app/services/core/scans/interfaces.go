package scans

import (
	"context"
	"cybersentry-service/internal/pkg/dto/requests"
	"cybersentry-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

type ScanUsecase interface {
	// GetRawPages gates a raw-pages request on a business email address. A
	// rejected address yields a rejection message, not an error.
	GetRawPages(ctx context.Context, email string) (*responses.OperationResultDTO, error)

	// ScanIP proxies the IP straight to the external feed, no gating.
	ScanIP(ctx context.Context, ip string) (json.RawMessage, error)

	// ScanCompany gates an external-surface scan of the company behind the
	// user's email domain.
	ScanCompany(ctx context.Context, request *requests.ScanCompany) (*responses.OperationResultDTO, error)
}
