package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecity-api/internal/database"
	"ecity-api/internal/domain"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
	"ecity-api/internal/response"
)

func setupCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.New(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestDepartmentService_CRUD(t *testing.T) {
	svc := NewDepartmentService(NewMockDepartmentRepository(), zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateDepartment(ctx, &dto.DepartmentRequest{
		Name:  " Public Works ",
		Head:  "Chief Engineer",
		Email: "works@city.gov",
	})
	require.NoError(t, err)
	assert.Equal(t, "Public Works", created.Name)

	got, err := svc.GetDepartment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chief Engineer", got.Head)

	updated, err := svc.UpdateDepartment(ctx, created.ID, &dto.DepartmentRequest{Name: "Public Works", Head: "Deputy Engineer"})
	require.NoError(t, err, "keeping its own name is not a conflict")
	assert.Equal(t, "Deputy Engineer", updated.Head)

	list, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteDepartment(ctx, created.ID))
	_, err = svc.GetDepartment(ctx, created.ID)
	requireAppError(t, err, response.ErrCodeNotFound)
	requireAppError(t, svc.DeleteDepartment(ctx, created.ID), response.ErrCodeNotFound)
}

func TestDepartmentService_DuplicateName(t *testing.T) {
	svc := NewDepartmentService(NewMockDepartmentRepository(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, &dto.DepartmentRequest{Name: "Sanitation"})
	require.NoError(t, err)
	other, err := svc.CreateDepartment(ctx, &dto.DepartmentRequest{Name: "Water Board"})
	require.NoError(t, err)

	_, err = svc.CreateDepartment(ctx, &dto.DepartmentRequest{Name: "Sanitation"})
	appErr := requireAppError(t, err, response.ErrCodeAlreadyExists)
	assert.Equal(t, "A department with this name already exists", appErr.Message)

	_, err = svc.UpdateDepartment(ctx, other.ID, &dto.DepartmentRequest{Name: "Sanitation"})
	requireAppError(t, err, response.ErrCodeAlreadyExists)
}

func TestDepartmentService_Validation(t *testing.T) {
	svc := NewDepartmentService(NewMockDepartmentRepository(), zap.NewNop())

	tests := []struct {
		name      string
		req       dto.DepartmentRequest
		wantField string
	}{
		{"missing name", dto.DepartmentRequest{Name: "  "}, "name"},
		{"bad email", dto.DepartmentRequest{Name: "Roads", Email: "roads-at-city"}, "email"},
		{"bad image url", dto.DepartmentRequest{Name: "Roads", ImageURL: "not a url"}, "imageUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.CreateDepartment(context.Background(), &req)
			appErr := requireAppError(t, err, response.ErrCodeValidation)
			assert.Equal(t, []string{tt.wantField}, appErr.Fields)
		})
	}
}

func TestDepartmentService_SeedDepartments(t *testing.T) {
	svc := NewDepartmentService(NewMockDepartmentRepository(), zap.NewNop())
	ctx := context.Background()

	seed := []dto.DepartmentRequest{{Name: "Public Works"}, {Name: "Sanitation"}, {Name: "Electricity Board"}}

	n, err := svc.SeedDepartments(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.SeedDepartments(ctx, append(seed, dto.DepartmentRequest{Name: "Water Board"}))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "existing departments are skipped")

	_, err = svc.SeedDepartments(ctx, []dto.DepartmentRequest{{Name: ""}})
	requireAppError(t, err, response.ErrCodeValidation)
}

func TestAnnouncementService(t *testing.T) {
	db := setupCatalogDB(t)
	ctx := context.Background()

	author := &domain.User{Email: "admin@city.gov", Name: "City Admin", Role: domain.RoleAdmin}
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, author))

	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db))

	created, err := svc.CreateAnnouncement(ctx, author.ID, &dto.CreateAnnouncementRequest{
		Title:   "Water supply interruption",
		Content: "No water on Sunday between 9 and 12",
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", created.Priority)
	require.NotNil(t, created.Author)
	assert.Equal(t, "City Admin", created.Author.Name)

	_, err = svc.CreateAnnouncement(ctx, author.ID, &dto.CreateAnnouncementRequest{Title: "Hi", Content: "x"})
	requireAppError(t, err, response.ErrCodeValidation)

	_, err = svc.CreateAnnouncement(ctx, author.ID, &dto.CreateAnnouncementRequest{Title: "Road closure", Content: "x", Priority: "urgent"})
	requireAppError(t, err, response.ErrCodeValidation)

	high := "HIGH"
	updated, err := svc.UpdateAnnouncement(ctx, created.ID, &dto.UpdateAnnouncementRequest{Priority: &high})
	require.NoError(t, err)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "Water supply interruption", updated.Title, "omitted fields are kept")

	list, err := svc.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "high", list[0].Priority)

	require.NoError(t, svc.DeleteAnnouncement(ctx, created.ID))
	requireAppError(t, svc.DeleteAnnouncement(ctx, created.ID), response.ErrCodeNotFound)

	_, err = svc.UpdateAnnouncement(ctx, uuid.New(), &dto.UpdateAnnouncementRequest{Priority: &high})
	requireAppError(t, err, response.ErrCodeNotFound)
}

func TestEventService(t *testing.T) {
	db := setupCatalogDB(t)
	ctx := context.Background()
	svc := NewEventService(repository.NewEventRepository(db))

	date := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	created, err := svc.CreateEvent(ctx, &dto.CreateEventRequest{
		Title:    "Lake cleanup drive",
		Date:     date,
		Location: "Sankey Tank",
	})
	require.NoError(t, err)
	assert.Equal(t, "community", created.Type)
	assert.Equal(t, 0, created.Participants)

	_, err = svc.CreateEvent(ctx, &dto.CreateEventRequest{Title: "No date", Location: "Hall"})
	appErr := requireAppError(t, err, response.ErrCodeValidation)
	assert.Equal(t, []string{"date"}, appErr.Fields)

	for i := 1; i <= 3; i++ {
		joined, err := svc.JoinEvent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, i, joined.Participants)
	}

	cleanup := "cleanup"
	updated, err := svc.UpdateEvent(ctx, created.ID, &dto.UpdateEventRequest{Type: &cleanup})
	require.NoError(t, err)
	assert.Equal(t, "cleanup", updated.Type)
	assert.Equal(t, 3, updated.Participants)

	got, err := svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))

	list, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID))
	_, err = svc.JoinEvent(ctx, created.ID)
	requireAppError(t, err, response.ErrCodeNotFound)
}
