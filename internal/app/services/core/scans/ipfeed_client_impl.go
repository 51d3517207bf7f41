package scans

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/exceptions"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	ipFeedClientInstance contracts.IPFeedClient
	onceIPFeedClient     sync.Once
)

type ipFeedClient struct {
	BaseUrl string
	Log     *zap.Logger
	client  *http.Client
}

func NewIPFeedClient(baseUrl string, timeoutInSeconds int, logger *zap.Logger) contracts.IPFeedClient {
	onceIPFeedClient.Do(func() {
		ipFeedClientInstance = &ipFeedClient{
			BaseUrl: baseUrl,
			Log:     logger,
			client: &http.Client{
				Timeout: time.Duration(timeoutInSeconds) * time.Second,
			},
		}
	})
	return ipFeedClientInstance
}

func (c *ipFeedClient) ScanIP(ctx context.Context, ip string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf(constvars.IPFeedScanIPPathFormat, c.BaseUrl, url.PathEscape(ip)))
}

func (c *ipFeedClient) CheckCredentials(ctx context.Context, email string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf(constvars.IPFeedCheckCredentialsPathFormat, c.BaseUrl, url.PathEscape(email)))
}

func (c *ipFeedClient) FetchRawPages(ctx context.Context, domain string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf(constvars.IPFeedRawPagesPathFormat, c.BaseUrl, url.PathEscape(domain)))
}

func (c *ipFeedClient) ScanCompany(ctx context.Context, domain, language string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf(constvars.IPFeedScanCompanyPathFormat, c.BaseUrl, url.PathEscape(domain), url.QueryEscape(language)))
}

// get performs a JSON GET against the feed and relays the body untouched.
func (c *ipFeedClient) get(ctx context.Context, requestURL string) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, requestURL, nil)
	if err != nil {
		c.Log.Error("ipFeedClient.get error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBuildHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		c.Log.Error("ipFeedClient.get error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, requestURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Log.Error("ipFeedClient.get unexpected feed status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, requestURL),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrScanFeedBadStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("ipFeedClient.get error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, "ip feed")
	}

	return json.RawMessage(body), nil
}
