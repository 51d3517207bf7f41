package operations

import (
	"context"
	"cybersentry-service/internal/app/config"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/exceptions"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryOperationRepository mirrors the redis store's semantics in memory:
// create-if-absent, atomic take, age-ordered listing.
type memoryOperationRepository struct {
	mu         sync.Mutex
	pending    map[string]*models.Operation
	rejectNext int
	takeCalls  int
}

func newMemoryOperationRepository() *memoryOperationRepository {
	return &memoryOperationRepository{pending: make(map[string]*models.Operation)}
}

func (r *memoryOperationRepository) CreatePending(ctx context.Context, operation *models.Operation, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejectNext > 0 {
		r.rejectNext--
		return false, nil
	}
	if _, exists := r.pending[operation.CodeHash]; exists {
		return false, nil
	}
	stored := *operation
	r.pending[operation.CodeHash] = &stored
	return true, nil
}

func (r *memoryOperationRepository) FindPending(ctx context.Context, codeHash string) (*models.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	operation, exists := r.pending[codeHash]
	if !exists {
		return nil, nil
	}
	found := *operation
	return &found, nil
}

func (r *memoryOperationRepository) TakePending(ctx context.Context, codeHash string) (*models.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.takeCalls++
	operation, exists := r.pending[codeHash]
	if !exists {
		return nil, nil
	}
	delete(r.pending, codeHash)
	return operation, nil
}

func (r *memoryOperationRepository) takes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.takeCalls
}

func (r *memoryOperationRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var codeHashes []string
	for codeHash, operation := range r.pending {
		if operation.CreatedAt.Before(cutoff) {
			codeHashes = append(codeHashes, codeHash)
		}
	}
	return codeHashes, nil
}

type memoryAuditRepository struct {
	mu     sync.Mutex
	audits []*models.OperationAudit
}

func (r *memoryAuditRepository) InsertAudit(ctx context.Context, audit *models.OperationAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, audit)
	return nil
}

func (r *memoryAuditRepository) byStatus(status models.OperationStatus) []*models.OperationAudit {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.OperationAudit
	for _, audit := range r.audits {
		if audit.Status == status {
			matched = append(matched, audit)
		}
	}
	return matched
}

type stubIPFeedClient struct {
	payload json.RawMessage
	err     error
}

func (c *stubIPFeedClient) ScanIP(ctx context.Context, ip string) (json.RawMessage, error) {
	return c.payload, c.err
}

func (c *stubIPFeedClient) CheckCredentials(ctx context.Context, email string) (json.RawMessage, error) {
	return c.payload, c.err
}

func (c *stubIPFeedClient) FetchRawPages(ctx context.Context, domain string) (json.RawMessage, error) {
	return c.payload, c.err
}

func (c *stubIPFeedClient) ScanCompany(ctx context.Context, domain, language string) (json.RawMessage, error) {
	return c.payload, c.err
}

type recordingMailer struct {
	mu          sync.Mutex
	codeMails   []string
	resultMails []string
	err         error
}

func (m *recordingMailer) SendOperationCode(ctx context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.codeMails = append(m.codeMails, to)
	return nil
}

func (m *recordingMailer) SendScanResult(ctx context.Context, to, downloadURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.resultMails = append(m.resultMails, to)
	return nil
}

type stubArtifactStorage struct {
	mu       sync.Mutex
	uploaded map[string][]byte
}

func (s *stubArtifactStorage) UploadJSON(ctx context.Context, objectName string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploaded == nil {
		s.uploaded = make(map[string][]byte)
	}
	s.uploaded[objectName] = data
	return nil
}

func (s *stubArtifactStorage) PresignedDownloadURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://minio.local/" + objectName, nil
}

func newTestInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Operation: config.Operation{
			CodeLength:              12,
			ValidityWindowInMinutes: 30,
			SweepIntervalInMinutes:  5,
		},
		Minio: config.AppMinio{
			BucketName:                    "scan-artifacts",
			PresignedUrlExpiryTimeInHours: 24,
		},
		JWT: config.JWT{
			Secret:                      "test-secret",
			ResultTokenExpTimeInMinutes: 60,
		},
	}
}

func newTestOperationUsecase(repo *memoryOperationRepository, audit *memoryAuditRepository, feed *stubIPFeedClient, mailer *recordingMailer) contracts.OperationUsecase {
	return NewOperationUsecase(repo, audit, feed, mailer, &stubArtifactStorage{}, newTestInternalConfig(), zap.NewNop())
}

func TestOperationUsecaseCreate(t *testing.T) {
	t.Run("persists pending operation and returns code", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		uc := newTestOperationUsecase(repo, &memoryAuditRepository{}, &stubIPFeedClient{}, &recordingMailer{})

		operation := models.NewCheckEmailCredentialsOperation("exec@acme.com", time.Now().UTC())
		code, err := uc.Create(context.Background(), operation)
		require.NoError(t, err)
		assert.Len(t, code, 12)
		assert.Len(t, repo.pending, 1)
		assert.NotContains(t, repo.pending, code, "raw code must not be a storage key")
	})

	t.Run("retries on code collision", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		repo.rejectNext = 2
		uc := newTestOperationUsecase(repo, &memoryAuditRepository{}, &stubIPFeedClient{}, &recordingMailer{})

		operation := models.NewCheckEmailCredentialsOperation("exec@acme.com", time.Now().UTC())
		code, err := uc.Create(context.Background(), operation)
		require.NoError(t, err)
		assert.NotEmpty(t, code)
	})

	t.Run("gives up after exhausting collision retries", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		repo.rejectNext = 3
		uc := newTestOperationUsecase(repo, &memoryAuditRepository{}, &stubIPFeedClient{}, &recordingMailer{})

		operation := models.NewCheckEmailCredentialsOperation("exec@acme.com", time.Now().UTC())
		_, err := uc.Create(context.Background(), operation)
		require.Error(t, err)
	})
}

func TestOperationUsecaseRedeem(t *testing.T) {
	t.Run("completes the gated action exactly once", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		audit := &memoryAuditRepository{}
		mailer := &recordingMailer{}
		feed := &stubIPFeedClient{payload: json.RawMessage(`{"leaks":[]}`)}
		uc := newTestOperationUsecase(repo, audit, feed, mailer)

		operation := models.NewGetRawPagesOperation("exec@acme.com", "acme.com", time.Now().UTC())
		code, err := uc.Create(context.Background(), operation)
		require.NoError(t, err)

		result, err := uc.Redeem(context.Background(), code)
		require.NoError(t, err)
		assert.Equal(t, models.OperationKindGetRawPages, result.Kind)
		assert.NotEmpty(t, result.DownloadURL)
		assert.NotEmpty(t, result.ResultToken)
		assert.Equal(t, []string{"exec@acme.com"}, mailer.resultMails)

		consumed := audit.byStatus(models.OperationStatusConsumed)
		require.Len(t, consumed, 1)
		assert.Equal(t, "completed", consumed[0].Outcome)

		_, err = uc.Redeem(context.Background(), code)
		requireNotFound(t, err)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		uc := newTestOperationUsecase(newMemoryOperationRepository(), &memoryAuditRepository{}, &stubIPFeedClient{}, &recordingMailer{})

		_, err := uc.Redeem(context.Background(), "NEVERISSUEDCODE")
		requireNotFound(t, err)
	})

	t.Run("executor failure still consumes the code", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		audit := &memoryAuditRepository{}
		feed := &stubIPFeedClient{err: exceptions.ErrScanFeedBadStatus(http.StatusBadGateway)}
		uc := newTestOperationUsecase(repo, audit, feed, &recordingMailer{})

		operation := models.NewCheckEmailCredentialsOperation("exec@acme.com", time.Now().UTC())
		code, err := uc.Create(context.Background(), operation)
		require.NoError(t, err)

		_, err = uc.Redeem(context.Background(), code)
		require.Error(t, err)

		consumed := audit.byStatus(models.OperationStatusConsumed)
		require.Len(t, consumed, 1)
		assert.Equal(t, "failed", consumed[0].Outcome)

		// No replay of a spent code, even after a failed execution.
		_, err = uc.Redeem(context.Background(), code)
		requireNotFound(t, err)
	})

	t.Run("pending lookup rejects spent and expired codes without a take", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		audit := &memoryAuditRepository{}
		feed := &stubIPFeedClient{payload: json.RawMessage(`{}`)}
		uc := newTestOperationUsecase(repo, audit, feed, &recordingMailer{})

		consumedOp := models.NewCheckEmailCredentialsOperation("exec@acme.com", time.Now().UTC())
		consumedCode, err := uc.Create(context.Background(), consumedOp)
		require.NoError(t, err)
		_, err = uc.Redeem(context.Background(), consumedCode)
		require.NoError(t, err)

		expiredOp := models.NewCheckEmailCredentialsOperation("old@acme.com", time.Now().UTC().Add(-time.Hour))
		expiredCode, err := uc.Create(context.Background(), expiredOp)
		require.NoError(t, err)
		_, err = uc.ExpireOlderThan(context.Background(), 30*time.Minute)
		require.NoError(t, err)

		takesBefore := repo.takes()
		_, err = uc.Redeem(context.Background(), consumedCode)
		requireNotFound(t, err)
		_, err = uc.Redeem(context.Background(), expiredCode)
		requireNotFound(t, err)
		assert.Equal(t, takesBefore, repo.takes(),
			"terminal codes must be rejected by the pending lookup alone")
	})

	t.Run("concurrent redeems have exactly one winner", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		audit := &memoryAuditRepository{}
		feed := &stubIPFeedClient{payload: json.RawMessage(`{}`)}
		uc := newTestOperationUsecase(repo, audit, feed, &recordingMailer{})

		operation := models.NewCheckEmailCredentialsOperation("exec@acme.com", time.Now().UTC())
		code, err := uc.Create(context.Background(), operation)
		require.NoError(t, err)

		const contenders = 25
		results := make(chan error, contenders)
		var wg sync.WaitGroup
		for i := 0; i < contenders; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Redeem(context.Background(), code)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		winners := 0
		for err := range results {
			if err == nil {
				winners++
				continue
			}
			requireNotFound(t, err)
		}
		assert.Equal(t, 1, winners)
		assert.Len(t, audit.byStatus(models.OperationStatusConsumed), 1)
	})
}

func TestOperationUsecaseExpireOlderThan(t *testing.T) {
	t.Run("sweeps only operations older than the window", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		audit := &memoryAuditRepository{}
		uc := newTestOperationUsecase(repo, audit, &stubIPFeedClient{}, &recordingMailer{})

		now := time.Now().UTC()
		stale := models.NewCheckEmailCredentialsOperation("old@acme.com", now.Add(-time.Hour))
		fresh := models.NewCheckEmailCredentialsOperation("new@acme.com", now)

		staleCode, err := uc.Create(context.Background(), stale)
		require.NoError(t, err)
		freshCode, err := uc.Create(context.Background(), fresh)
		require.NoError(t, err)

		swept, err := uc.ExpireOlderThan(context.Background(), 30*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, swept)

		expired := audit.byStatus(models.OperationStatusExpired)
		require.Len(t, expired, 1)
		assert.Equal(t, "old@acme.com", expired[0].Payload.Email)

		_, err = uc.Redeem(context.Background(), staleCode)
		requireNotFound(t, err)

		// The fresh one is untouched and still redeemable.
		_, err = uc.Redeem(context.Background(), freshCode)
		require.NoError(t, err)
	})

	t.Run("running twice sweeps nothing new", func(t *testing.T) {
		repo := newMemoryOperationRepository()
		audit := &memoryAuditRepository{}
		uc := newTestOperationUsecase(repo, audit, &stubIPFeedClient{}, &recordingMailer{})

		stale := models.NewCheckEmailCredentialsOperation("old@acme.com", time.Now().UTC().Add(-time.Hour))
		_, err := uc.Create(context.Background(), stale)
		require.NoError(t, err)

		swept, err := uc.ExpireOlderThan(context.Background(), 30*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, swept)

		swept, err = uc.ExpireOlderThan(context.Background(), 30*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 0, swept)
		assert.Len(t, audit.byStatus(models.OperationStatusExpired), 1)
	})
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
}
