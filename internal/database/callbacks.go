package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks times every query, create, update, delete and raw
// statement issued through db and reports it to recorder.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()

	before, after := timingCallbacks("select", recorder)
	_ = cb.Query().Before("gorm:query").Register("metrics:query_before", before)
	_ = cb.Query().After("gorm:query").Register("metrics:query_after", after)

	before, after = timingCallbacks("insert", recorder)
	_ = cb.Create().Before("gorm:create").Register("metrics:create_before", before)
	_ = cb.Create().After("gorm:create").Register("metrics:create_after", after)

	before, after = timingCallbacks("update", recorder)
	_ = cb.Update().Before("gorm:update").Register("metrics:update_before", before)
	_ = cb.Update().After("gorm:update").Register("metrics:update_after", after)

	before, after = timingCallbacks("delete", recorder)
	_ = cb.Delete().Before("gorm:delete").Register("metrics:delete_before", before)
	_ = cb.Delete().After("gorm:delete").Register("metrics:delete_after", after)

	before, after = timingCallbacks("raw", recorder)
	_ = cb.Raw().Before("gorm:raw").Register("metrics:raw_before", before)
	_ = cb.Raw().After("gorm:raw").Register("metrics:raw_after", after)
}

func timingCallbacks(operation string, recorder MetricsRecorder) (before, after func(*gorm.DB)) {
	before = func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	}
	after = func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
	return before, after
}

// StartDBStatsCollector publishes connection pool stats every interval until
// ctx is cancelled.
func StartDBStatsCollector(ctx context.Context, db *gorm.DB, recorder MetricsRecorder, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-ctx.Done():
				return
			}
		}
	}()
}
