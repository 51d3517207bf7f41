package operations

import (
	"context"
	"cybersentry-service/internal/app/config"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically expires pending operations older than the validity
// window. A redis lock keeps the sweep single-flight across instances; the
// sweep itself never blocks concurrent create or redeem calls.
type Sweeper struct {
	log              *zap.Logger
	locker           contracts.LockerService
	operationUsecase contracts.OperationUsecase
	interval         time.Duration
	window           time.Duration
	stop             chan struct{}
}

func NewSweeper(log *zap.Logger, locker contracts.LockerService, operationUsecase contracts.OperationUsecase, cfg *config.InternalConfig) *Sweeper {
	interval := time.Duration(cfg.Operation.SweepIntervalInMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	window := time.Duration(cfg.Operation.ValidityWindowInMinutes) * time.Minute
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &Sweeper{
		log:              log,
		locker:           locker,
		operationUsecase: operationUsecase,
		interval:         interval,
		window:           window,
		stop:             make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (s *Sweeper) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(s.interval)
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-s.stop:
				ticker.Stop()
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return func() {
		close(s.stop)
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	acquired, lockValue, err := s.locker.TryLock(ctx, constvars.RedisKeyOperationSweeperLock, s.interval)
	if err != nil {
		s.log.Error("operations.Sweeper failed to acquire lock",
			zap.Error(err),
		)
		return
	}
	if !acquired {
		return
	}
	defer s.locker.Unlock(ctx, constvars.RedisKeyOperationSweeperLock, lockValue)

	swept, err := s.operationUsecase.ExpireOlderThan(ctx, s.window)
	if err != nil {
		s.log.Error("operations.Sweeper sweep failed",
			zap.Error(err),
		)
		return
	}
	if swept > 0 {
		s.log.Info("operations.Sweeper expired stale operations",
			zap.Int(constvars.LoggingSweptKey, swept),
		)
	}
}
