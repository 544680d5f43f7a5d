package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecity-api/internal/domain"
	"ecity-api/internal/realtime"
	"ecity-api/internal/repository"
)

// MockIssueRepository is a mock implementation of IssueRepository
type MockIssueRepository struct {
	CreateFunc             func(ctx context.Context, issue *domain.Issue) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	FindAllFunc            func(ctx context.Context, filter repository.IssueFilter) ([]*domain.Issue, int64, error)
	UpdateStatusFunc       func(ctx context.Context, id uuid.UUID, updates map[string]interface{}, change *domain.IssueStatusChange) error
	IncrementUpvotesFunc   func(ctx context.Context, id uuid.UUID) (int, error)
	DeleteWithCommentsFunc func(ctx context.Context, id uuid.UUID) error
	FindStatusHistoryFunc  func(ctx context.Context, id uuid.UUID) ([]*domain.IssueStatusChange, error)
	CountByStatusFunc      func(ctx context.Context, reporterID *uuid.UUID) ([]repository.GroupCount, error)
	CountByCategoryFunc    func(ctx context.Context) ([]repository.GroupCount, error)
	FindCreatedAtSinceFunc func(ctx context.Context, since time.Time) ([]time.Time, error)
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, issue)
	}
	if issue.ID == uuid.Nil {
		issue.ID = uuid.New()
	}
	return nil
}

func (m *MockIssueRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockIssueRepository) FindAll(ctx context.Context, filter repository.IssueFilter) ([]*domain.Issue, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockIssueRepository) UpdateStatus(ctx context.Context, id uuid.UUID, updates map[string]interface{}, change *domain.IssueStatusChange) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, updates, change)
	}
	return nil
}

func (m *MockIssueRepository) IncrementUpvotes(ctx context.Context, id uuid.UUID) (int, error) {
	if m.IncrementUpvotesFunc != nil {
		return m.IncrementUpvotesFunc(ctx, id)
	}
	return 0, gorm.ErrRecordNotFound
}

func (m *MockIssueRepository) DeleteWithComments(ctx context.Context, id uuid.UUID) error {
	if m.DeleteWithCommentsFunc != nil {
		return m.DeleteWithCommentsFunc(ctx, id)
	}
	return nil
}

func (m *MockIssueRepository) FindStatusHistory(ctx context.Context, id uuid.UUID) ([]*domain.IssueStatusChange, error) {
	if m.FindStatusHistoryFunc != nil {
		return m.FindStatusHistoryFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIssueRepository) CountByStatus(ctx context.Context, reporterID *uuid.UUID) ([]repository.GroupCount, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, reporterID)
	}
	return nil, nil
}

func (m *MockIssueRepository) CountByCategory(ctx context.Context) ([]repository.GroupCount, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx)
	}
	return nil, nil
}

func (m *MockIssueRepository) FindCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	if m.FindCreatedAtSinceFunc != nil {
		return m.FindCreatedAtSinceFunc(ctx, since)
	}
	return nil, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc         func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIssueIDFunc  func(ctx context.Context, issueID uuid.UUID) ([]*domain.Comment, error)
	CountByIssueIDFunc func(ctx context.Context, issueID uuid.UUID) (int64, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCommentRepository) FindByIssueID(ctx context.Context, issueID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByIssueIDFunc != nil {
		return m.FindByIssueIDFunc(ctx, issueID)
	}
	return nil, nil
}

func (m *MockCommentRepository) CountByIssueID(ctx context.Context, issueID uuid.UUID) (int64, error) {
	if m.CountByIssueIDFunc != nil {
		return m.CountByIssueIDFunc(ctx, issueID)
	}
	return 0, nil
}

// MockUserRepository keeps users in memory
type MockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	CreateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

// MockDepartmentRepository keeps departments in memory
type MockDepartmentRepository struct {
	mu    sync.Mutex
	depts map[uuid.UUID]*domain.Department
}

func NewMockDepartmentRepository() *MockDepartmentRepository {
	return &MockDepartmentRepository{depts: make(map[uuid.UUID]*domain.Department)}
}

func (m *MockDepartmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.depts {
		if d.Name == dept.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if dept.ID == uuid.Nil {
		dept.ID = uuid.New()
	}
	copied := *dept
	m.depts[dept.ID] = &copied
	return nil
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.depts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *MockDepartmentRepository) FindByName(ctx context.Context, name string) (*domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.depts {
		if d.Name == name {
			copied := *d
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDepartmentRepository) FindAll(ctx context.Context) ([]*domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Department, 0, len(m.depts))
	for _, d := range m.depts {
		copied := *d
		result = append(result, &copied)
	}
	return result, nil
}

func (m *MockDepartmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.depts[dept.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *dept
	m.depts[dept.ID] = &copied
	return nil
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.depts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.depts, id)
	return nil
}

// recordingPublisher collects published live feed events
type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(evt realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []realtime.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]realtime.EventType, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, e.Type)
	}
	return result
}
