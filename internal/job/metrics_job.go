package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ecity-api/internal/dto"
	"ecity-api/internal/metrics"
)

const snapshotTimeout = 10 * time.Second

// StatusCounter reports how many issues are in each status
type StatusCounter interface {
	StatusStats(ctx context.Context) ([]dto.StatusStat, error)
}

// MetricsSnapshotJob refreshes the issue gauges from the database
type MetricsSnapshotJob struct {
	stats   StatusCounter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewMetricsSnapshotJob creates a new MetricsSnapshotJob instance
func NewMetricsSnapshotJob(stats StatusCounter, m *metrics.Metrics, logger *zap.Logger) *MetricsSnapshotJob {
	return &MetricsSnapshotJob{
		stats:   stats,
		metrics: m,
		logger:  logger,
	}
}

// Run executes one snapshot. Failures are logged and the gauges keep their
// previous values.
func (j *MetricsSnapshotJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	stats, err := j.stats.StatusStats(ctx)
	if err != nil {
		j.logger.Error("Failed to snapshot issue counts", zap.Error(err))
		return
	}

	var total int64
	byStatus := make(map[string]int64, len(stats))
	for _, s := range stats {
		byStatus[s.Status] = s.Count
		total += s.Count
	}

	j.metrics.SetIssuesTotal(total)
	j.metrics.SetIssuesByStatus(byStatus)

	j.logger.Debug("Issue metrics refreshed", zap.Int64("total", total))
}

// Scheduler runs jobs on cron expressions
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a scheduler that skips a run while the previous one is
// still going and recovers panicking jobs. Recover must sit inside
// SkipIfStillRunning, which only releases its slot when Run returns normally.
func NewScheduler(logger *zap.Logger) *Scheduler {
	cronLogger := cronLogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cronLogger),
			cron.Recover(cronLogger),
		)),
		logger: logger,
	}
}

// Add schedules job on spec. An empty spec disables the job.
func (s *Scheduler) Add(name, spec string, job cron.Job) error {
	if spec == "" {
		s.logger.Info("Job disabled", zap.String("job", name))
		return nil
	}
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return err
	}
	s.logger.Info("Job scheduled", zap.String("job", name), zap.String("schedule", spec))
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Jobs still running at shutdown")
	}
}

// cronLogAdapter routes cron's logr-style logging to zap
type cronLogAdapter struct {
	logger *zap.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
