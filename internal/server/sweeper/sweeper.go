// Package sweeper периодически удаляет истекшие refresh токены
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout ограничивает один проход очистки
const runTimeout = 30 * time.Second

// ExpiredTokenDeleter удаляет токены с expires_at <= now
type ExpiredTokenDeleter interface {
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}

// Sweeper запускает очистку по cron расписанию
type Sweeper struct {
	cron   *cron.Cron
	store  ExpiredTokenDeleter
	logger *zap.Logger
	now    func() time.Time
}

// New создает Sweeper. schedule понимает стандартный cron и дескрипторы
// вида "@every 1h".
func New(logger *zap.Logger, store ExpiredTokenDeleter, schedule string) (*Sweeper, error) {
	cl := cronLogger{logger: logger.Sugar()}
	s := &Sweeper{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweeper schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info("token sweeper started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop останавливает планировщик и ждет завершения текущего прохода
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("token sweeper stopped")
}

// RunOnce выполняет один проход очистки
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	removed, err := s.store.DeleteExpiredTokens(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return removed, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	removed, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("token sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("expired refresh tokens removed", zap.Int("count", removed))
}

// cronLogger направляет служебные сообщения cron в zap
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
