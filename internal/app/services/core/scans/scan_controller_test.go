package scans

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOperationUsecase struct {
	mu      sync.Mutex
	created []*models.Operation
	code    string
	err     error
}

func (uc *fakeOperationUsecase) Create(ctx context.Context, operation *models.Operation) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.err != nil {
		return "", uc.err
	}
	uc.created = append(uc.created, operation)
	return uc.code, nil
}

func (uc *fakeOperationUsecase) Redeem(ctx context.Context, code string) (*contracts.RedeemResult, error) {
	return nil, exceptions.ErrOperationNotFound(nil)
}

func (uc *fakeOperationUsecase) ExpireOlderThan(ctx context.Context, window time.Duration) (int, error) {
	return 0, nil
}

type fakeMailer struct {
	mu        sync.Mutex
	codeMails []string
}

func (m *fakeMailer) SendOperationCode(ctx context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeMails = append(m.codeMails, to)
	return nil
}

func (m *fakeMailer) SendScanResult(ctx context.Context, to, downloadURL string) error {
	return nil
}

type fakeFeedClient struct {
	payload json.RawMessage
	err     error
}

func (c *fakeFeedClient) ScanIP(ctx context.Context, ip string) (json.RawMessage, error) {
	return c.payload, c.err
}

func (c *fakeFeedClient) CheckCredentials(ctx context.Context, email string) (json.RawMessage, error) {
	return c.payload, c.err
}

func (c *fakeFeedClient) FetchRawPages(ctx context.Context, domain string) (json.RawMessage, error) {
	return c.payload, c.err
}

func (c *fakeFeedClient) ScanCompany(ctx context.Context, domain, language string) (json.RawMessage, error) {
	return c.payload, c.err
}

func newScanTestRouter(operationUsecase *fakeOperationUsecase, mailer *fakeMailer, feed *fakeFeedClient) *chi.Mux {
	logger := zap.NewNop()
	scanUsecase := NewScanUsecase(operationUsecase, mailer, feed, logger)
	controller := NewScanController(logger, scanUsecase, 5)

	router := chi.NewRouter()
	router.Get("/scan/rawpages/{email}", controller.GetRawPages)
	router.Get("/scan/ip/{ip}", controller.ScanIP)
	router.Get("/scan/company", controller.ScanCompany)
	return router
}

func decodeOperationResult(t *testing.T, body []byte) string {
	t.Helper()
	var response struct {
		OperationResult string `json:"operationResult"`
	}
	require.NoError(t, json.Unmarshal(body, &response))
	return response.OperationResult
}

func TestGetRawPagesEndpoint(t *testing.T) {
	t.Run("business email creates an operation and mails the code", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		mailer := &fakeMailer{}
		router := newScanTestRouter(operationUsecase, mailer, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/rawpages/exec@acme.com", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.OperationResultRequestSent, decodeOperationResult(t, rr.Body.Bytes()))
		require.Len(t, operationUsecase.created, 1)
		assert.Equal(t, models.OperationKindGetRawPages, operationUsecase.created[0].Kind)
		assert.Equal(t, "acme.com", operationUsecase.created[0].Payload.Domain)
		assert.Equal(t, []string{"exec@acme.com"}, mailer.codeMails)
	})

	t.Run("consumer email is rejected with 200 and no side effects", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		mailer := &fakeMailer{}
		router := newScanTestRouter(operationUsecase, mailer, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/rawpages/someone@gmail.com", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.OperationResultInvalidBusinessEmail, decodeOperationResult(t, rr.Body.Bytes()))
		assert.Empty(t, operationUsecase.created)
		assert.Empty(t, mailer.codeMails)
	})

	t.Run("malformed email is rejected with 200", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		router := newScanTestRouter(operationUsecase, &fakeMailer{}, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/rawpages/not-an-email", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.OperationResultInvalidBusinessEmail, decodeOperationResult(t, rr.Body.Bytes()))
		assert.Empty(t, operationUsecase.created)
	})
}

func TestScanIPEndpoint(t *testing.T) {
	t.Run("relays the feed verdict", func(t *testing.T) {
		feed := &fakeFeedClient{payload: json.RawMessage(`{"ip":"8.8.8.8","reputation":"clean"}`)}
		router := newScanTestRouter(&fakeOperationUsecase{}, &fakeMailer{}, feed)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/ip/8.8.8.8", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ip":"8.8.8.8","reputation":"clean"}`, rr.Body.String())
	})

	t.Run("malformed address is a bare 400", func(t *testing.T) {
		router := newScanTestRouter(&fakeOperationUsecase{}, &fakeMailer{}, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/ip/not-an-ip", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("feed failure is a 500", func(t *testing.T) {
		feed := &fakeFeedClient{err: exceptions.ErrSendHTTPRequest(context.DeadlineExceeded)}
		router := newScanTestRouter(&fakeOperationUsecase{}, &fakeMailer{}, feed)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/ip/8.8.8.8", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestScanCompanyEndpoint(t *testing.T) {
	t.Run("valid parameters create an operation with a derived company name", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		mailer := &fakeMailer{}
		router := newScanTestRouter(operationUsecase, mailer, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/company?userEmail=exec@acme.com&language=en", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.OperationResultRequestSent, decodeOperationResult(t, rr.Body.Bytes()))
		require.Len(t, operationUsecase.created, 1)
		operation := operationUsecase.created[0]
		assert.Equal(t, models.OperationKindScanCompany, operation.Kind)
		assert.Equal(t, "Acme", operation.Payload.CompanyName)
		assert.Equal(t, "exec@acme.com", operation.Payload.UserEmail)
		assert.Equal(t, "en", operation.Payload.Language)
		assert.Equal(t, []string{"exec@acme.com"}, mailer.codeMails)
	})

	t.Run("missing language is a bare 400", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		router := newScanTestRouter(operationUsecase, &fakeMailer{}, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/company?userEmail=exec@acme.com", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, operationUsecase.created)
	})

	t.Run("missing userEmail is a bare 400", func(t *testing.T) {
		router := newScanTestRouter(&fakeOperationUsecase{}, &fakeMailer{}, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/company?language=en", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("consumer email with both parameters present is a 200 rejection", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		mailer := &fakeMailer{}
		router := newScanTestRouter(operationUsecase, mailer, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/company?userEmail=a@gmail.com&language=en", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.OperationResultInvalidCompanyScan, decodeOperationResult(t, rr.Body.Bytes()))
		assert.Empty(t, operationUsecase.created)
		assert.Empty(t, mailer.codeMails)
	})

	t.Run("overlong language is a 200 rejection", func(t *testing.T) {
		operationUsecase := &fakeOperationUsecase{code: "ABCDEF234567"}
		router := newScanTestRouter(operationUsecase, &fakeMailer{}, &fakeFeedClient{})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan/company?userEmail=exec@acme.com&language=eng", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.OperationResultInvalidCompanyScan, decodeOperationResult(t, rr.Body.Bytes()))
		assert.Empty(t, operationUsecase.created)
	})
}
