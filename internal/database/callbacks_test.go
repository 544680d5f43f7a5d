package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

// mockMetricsRecorder is a mock implementation of MetricsRecorder for testing
type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	dbStats []sql.DBStats
}

type queryRecord struct {
	operation string
	table     string
	err       error
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{operation: operation, table: table, err: err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dbStats, ok := stats.(sql.DBStats); ok {
		m.dbStats = append(m.dbStats, dbStats)
	}
}

func (m *mockMetricsRecorder) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = nil
}

func (m *mockMetricsRecorder) statsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dbStats)
}

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, AutoMigrate(db), "Failed to migrate schema")
	return db
}

func TestRegisterMetricsCallbacks_Operations(t *testing.T) {
	tests := []struct {
		name    string
		run     func(db *gorm.DB, dept *domain.Department) error
		wantOp  string
		wantErr bool
	}{
		{
			name: "select",
			run: func(db *gorm.DB, dept *domain.Department) error {
				var found domain.Department
				return db.First(&found, "id = ?", dept.ID).Error
			},
			wantOp: "select",
		},
		{
			name: "select not found records error",
			run: func(db *gorm.DB, dept *domain.Department) error {
				var found domain.Department
				return db.First(&found, "id = ?", uuid.New()).Error
			},
			wantOp:  "select",
			wantErr: true,
		},
		{
			name: "update",
			run: func(db *gorm.DB, dept *domain.Department) error {
				return db.Model(dept).Update("head", "Chief Engineer").Error
			},
			wantOp: "update",
		},
		{
			name: "delete",
			run: func(db *gorm.DB, dept *domain.Department) error {
				return db.Delete(dept).Error
			},
			wantOp: "delete",
		},
		{
			name: "duplicate insert records error",
			run: func(db *gorm.DB, dept *domain.Department) error {
				return db.Create(&domain.Department{Name: dept.Name}).Error
			},
			wantOp:  "insert",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			recorder := &mockMetricsRecorder{}
			RegisterMetricsCallbacks(db, recorder)

			dept := &domain.Department{Name: "Public Works"}
			require.NoError(t, db.Create(dept).Error)
			require.Len(t, recorder.queries, 1)
			assert.Equal(t, "insert", recorder.queries[0].operation)
			recorder.reset()

			err := tt.run(db, dept)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, recorder.queries, 1, "Expected one query to be recorded")
			query := recorder.queries[0]
			assert.Equal(t, tt.wantOp, query.operation)
			assert.Equal(t, "departments", query.table)
			if tt.wantErr {
				assert.Error(t, query.err)
			} else {
				assert.NoError(t, query.err)
			}
		})
	}
}

func TestRegisterMetricsCallbacks_Raw(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	require.NoError(t, db.Exec("UPDATE events SET participants = participants + 1").Error)

	require.Len(t, recorder.queries, 1)
	assert.Equal(t, "raw", recorder.queries[0].operation)
}

func TestRegisterMetricsCallbacks_TransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&domain.Department{Name: "Sanitation"}).Error; err != nil {
			return err
		}
		return errors.New("forced rollback")
	})
	require.Error(t, err)

	// the insert is still observed even though it was rolled back
	require.NotEmpty(t, recorder.queries)
	assert.Equal(t, "insert", recorder.queries[0].operation)

	var count int64
	require.NoError(t, db.Model(&domain.Department{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStartDBStatsCollector(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	StartDBStatsCollector(ctx, db, recorder, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return recorder.statsCalls() > 0
	}, time.Second, 10*time.Millisecond, "stats should be collected at least once")

	cancel()
	time.Sleep(30 * time.Millisecond)
	after := recorder.statsCalls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, recorder.statsCalls(), "collector should stop after cancel")
}

func TestAutoMigrate_CreatesAllTables(t *testing.T) {
	db := setupTestDB(t)

	for _, m := range models() {
		assert.True(t, db.Migrator().HasTable(m.tableName), "table %s should exist", m.tableName)
	}
}

func TestNew_SQLite(t *testing.T) {
	db, err := New(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	defer Close(db)

	assert.NoError(t, Ping(context.Background(), db))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
