package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
)

func TestIssueRepository_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	reporter := newTestUser("reporter@example.com", domain.RoleCitizen)
	require.NoError(t, users.Create(ctx, reporter))

	issue := newTestIssue("Broken streetlight here", domain.CategoryElectricity)
	issue.ReporterID = &reporter.ID
	require.NoError(t, repo.Create(ctx, issue))
	assert.NotEqual(t, uuid.Nil, issue.ID)

	found, err := repo.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Broken streetlight here", found.Title)
	assert.Equal(t, domain.IssueStatusPending, found.Status)
	assert.Equal(t, 0, found.Upvotes)
	require.NotNil(t, found.Reporter)
	assert.Equal(t, "reporter@example.com", found.Reporter.Email)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIssueRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	reporterID := uuid.New()
	fixtures := []*domain.Issue{
		newTestIssue("Pothole on Elm Road", domain.CategoryRoads),
		newTestIssue("Overflowing garbage bin", domain.CategorySanitation),
		newTestIssue("Water leak near park", domain.CategoryWater),
	}
	fixtures[1].ReporterID = &reporterID
	fixtures[2].Status = domain.IssueStatusResolved
	for _, issue := range fixtures {
		require.NoError(t, repo.Create(ctx, issue))
	}

	tests := []struct {
		name      string
		filter    IssueFilter
		wantTotal int64
		wantLen   int
	}{
		{"no filter", IssueFilter{}, 3, 3},
		{"by category", IssueFilter{Category: domain.CategoryRoads}, 1, 1},
		{"by status", IssueFilter{Status: domain.IssueStatusResolved}, 1, 1},
		{"by reporter", IssueFilter{ReporterID: &reporterID}, 1, 1},
		{"search is case insensitive", IssueFilter{Search: "POTHOLE"}, 1, 1},
		{"search matches location", IssueFilter{Search: "main street"}, 3, 3},
		{"paginated", IssueFilter{Page: 2, Limit: 2}, 3, 1},
		{"no match", IssueFilter{Search: "volcano"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, total, err := repo.FindAll(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, issues, tt.wantLen)
		})
	}
}

func TestIssueRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	issue := newTestIssue("Broken streetlight here", domain.CategoryElectricity)
	require.NoError(t, repo.Create(ctx, issue))

	// upvote first so the update can be checked for not clobbering the counter
	_, err := repo.IncrementUpvotes(ctx, issue.ID)
	require.NoError(t, err)

	actor := uuid.New()
	updates := map[string]interface{}{
		"status":              domain.IssueStatusInProgress,
		"assigned_officer":    "Officer Rao",
		"assigned_department": "Electricity Board",
	}
	change := &domain.IssueStatusChange{
		IssueID:    issue.ID,
		FromStatus: domain.IssueStatusPending,
		ToStatus:   domain.IssueStatusInProgress,
		ActorID:    actor,
		Changes:    datatypes.JSON(`{"assignedOfficer":"Officer Rao"}`),
	}
	require.NoError(t, repo.UpdateStatus(ctx, issue.ID, updates, change))

	found, err := repo.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusInProgress, found.Status)
	require.NotNil(t, found.AssignedOfficer)
	assert.Equal(t, "Officer Rao", *found.AssignedOfficer)
	assert.Equal(t, 1, found.Upvotes)

	history, err := repo.FindStatusHistory(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.IssueStatusPending, history[0].FromStatus)
	assert.Equal(t, actor, history[0].ActorID)

	err = repo.UpdateStatus(ctx, uuid.New(), map[string]interface{}{"status": domain.IssueStatusResolved}, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIssueRepository_IncrementUpvotes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	issue := newTestIssue("Broken streetlight here", domain.CategoryElectricity)
	require.NoError(t, repo.Create(ctx, issue))

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementUpvotes(ctx, issue.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := repo.FindByID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, n, found.Upvotes)

	count, err := repo.IncrementUpvotes(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, n+1, count)

	_, err = repo.IncrementUpvotes(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIssueRepository_DeleteWithComments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	issue := newTestIssue("Broken streetlight here", domain.CategoryElectricity)
	other := newTestIssue("Pothole on Elm Road", domain.CategoryRoads)
	require.NoError(t, repo.Create(ctx, issue))
	require.NoError(t, repo.Create(ctx, other))

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, comments.Create(ctx, &domain.Comment{IssueID: issue.ID, UserID: userID, Content: "same here"}))
	}
	require.NoError(t, comments.Create(ctx, &domain.Comment{IssueID: other.ID, UserID: userID, Content: "unrelated"}))
	require.NoError(t, repo.UpdateStatus(ctx, issue.ID,
		map[string]interface{}{"status": domain.IssueStatusRejected},
		&domain.IssueStatusChange{IssueID: issue.ID, FromStatus: domain.IssueStatusPending, ToStatus: domain.IssueStatusRejected, ActorID: userID},
	))

	require.NoError(t, repo.DeleteWithComments(ctx, issue.ID))

	_, err := repo.FindByID(ctx, issue.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := comments.CountByIssueID(ctx, issue.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	history, err := repo.FindStatusHistory(ctx, issue.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	count, err = comments.CountByIssueID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "comments of other issues must survive")

	assert.ErrorIs(t, repo.DeleteWithComments(ctx, issue.ID), gorm.ErrRecordNotFound)
}

func TestIssueRepository_Aggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIssueRepository(db)
	ctx := context.Background()

	reporterID := uuid.New()
	fixtures := []*domain.Issue{
		newTestIssue("Pothole on Elm Road", domain.CategoryRoads),
		newTestIssue("Pothole on Oak Road", domain.CategoryRoads),
		newTestIssue("Water leak near park", domain.CategoryWater),
	}
	fixtures[0].ReporterID = &reporterID
	fixtures[1].ReporterID = &reporterID
	fixtures[1].Status = domain.IssueStatusResolved
	for _, issue := range fixtures {
		require.NoError(t, repo.Create(ctx, issue))
	}

	toMap := func(rows []GroupCount) map[string]int64 {
		m := make(map[string]int64)
		for _, r := range rows {
			m[r.Key] = r.Count
		}
		return m
	}

	byStatus, err := repo.CountByStatus(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pending": 2, "resolved": 1}, toMap(byStatus))

	mine, err := repo.CountByStatus(ctx, &reporterID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pending": 1, "resolved": 1}, toMap(mine))

	byCategory, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"roads": 2, "water": 1}, toMap(byCategory))

	stamps, err := repo.FindCreatedAtSince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, stamps, 3)

	stamps, err = repo.FindCreatedAtSince(ctx, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, stamps)
}
