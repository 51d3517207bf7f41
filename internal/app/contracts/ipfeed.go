package contracts

import (
	"context"

	"github.com/goccy/go-json"
)

// IPFeedClient talks to the external IP-intelligence feed. All calls are
// bounded by the client's timeout; results are relayed as raw JSON.
type IPFeedClient interface {
	ScanIP(ctx context.Context, ip string) (json.RawMessage, error)
	CheckCredentials(ctx context.Context, email string) (json.RawMessage, error)
	FetchRawPages(ctx context.Context, domain string) (json.RawMessage, error)
	ScanCompany(ctx context.Context, domain, language string) (json.RawMessage, error)
}
