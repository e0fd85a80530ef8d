package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/events"
	"github.com/premedly/studyplan-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCategoryStore mocks the store.CategoryStore interface
type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStore) GetByConcept(
	ctx context.Context,
	concept string,
) (*domain.Category, error) {
	args := m.Called(ctx, concept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStore) List(
	ctx context.Context,
	section domain.Section,
) ([]*domain.Category, error) {
	args := m.Called(ctx, section)
	return args.Get(0).([]*domain.Category), args.Error(1)
}

// MockDataPulseStore mocks the store.DataPulseStore interface
type MockDataPulseStore struct {
	mock.Mock
}

func (m *MockDataPulseStore) Create(ctx context.Context, pulse *domain.DataPulse) error {
	args := m.Called(ctx, pulse)
	return args.Error(0)
}

func (m *MockDataPulseStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.DataPulse, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*domain.DataPulse), args.Error(1)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockKnowledgeProfileStore mocks the store.KnowledgeProfileStore interface
type MockKnowledgeProfileStore struct {
	mock.Mock
}

func (m *MockKnowledgeProfileStore) Get(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*domain.KnowledgeProfile, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeProfile), args.Error(1)
}

func (m *MockKnowledgeProfileStore) ListWeakest(
	ctx context.Context,
	userID uuid.UUID,
	section domain.Section,
	limit int,
) ([]domain.CategoryMastery, error) {
	args := m.Called(ctx, userID, section, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryMastery), args.Error(1)
}

func (m *MockKnowledgeProfileStore) ApplyCounts(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	positive, negative int,
) (*domain.KnowledgeProfile, error) {
	args := m.Called(ctx, userID, categoryID, positive, negative)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeProfile), args.Error(1)
}

func (m *MockKnowledgeProfileStore) SetMastery(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	mastery float64,
) error {
	args := m.Called(ctx, userID, categoryID, mastery)
	return args.Error(0)
}

func (m *MockKnowledgeProfileStore) MarkCompleted(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

func (m *MockKnowledgeProfileStore) DeleteForUser(
	ctx context.Context,
	userID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKnowledgeProfileStore) WithTx(tx *sql.Tx) store.KnowledgeProfileStore {
	args := m.Called(tx)
	return args.Get(0).(store.KnowledgeProfileStore)
}

// MockMasteryService mocks the MasteryService interface
type MockMasteryService struct {
	mock.Mock
}

func (m *MockMasteryService) GetWeakestCategories(
	ctx context.Context,
	userID uuid.UUID,
	section domain.Section,
	pageSize int,
) ([]domain.CategoryMastery, error) {
	args := m.Called(ctx, userID, section, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryMastery), args.Error(1)
}

func (m *MockMasteryService) FoldCounts(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	positive, negative int,
) error {
	args := m.Called(ctx, userID, categoryID, positive, negative)
	return args.Error(0)
}

func (m *MockMasteryService) MarkCategoryCompleted(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

// MockStudyPlanStore mocks the store.StudyPlanStore interface
type MockStudyPlanStore struct {
	mock.Mock
}

func (m *MockStudyPlanStore) Create(ctx context.Context, plan *domain.StudyPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockStudyPlanStore) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudyPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyPlan), args.Error(1)
}

func (m *MockStudyPlanStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudyPlanStore) WithTx(tx *sql.Tx) store.StudyPlanStore {
	args := m.Called(tx)
	return args.Get(0).(store.StudyPlanStore)
}

// MockCalendarActivityStore mocks the store.CalendarActivityStore interface
type MockCalendarActivityStore struct {
	mock.Mock
}

func (m *MockCalendarActivityStore) CreateBatch(
	ctx context.Context,
	activities []*domain.CalendarActivity,
) error {
	args := m.Called(ctx, activities)
	return args.Error(0)
}

func (m *MockCalendarActivityStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.CalendarActivity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarActivity), args.Error(1)
}

func (m *MockCalendarActivityStore) ListByPlan(
	ctx context.Context,
	planID uuid.UUID,
) ([]*domain.CalendarActivity, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).([]*domain.CalendarActivity), args.Error(1)
}

func (m *MockCalendarActivityStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ActivityStatus,
) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCalendarActivityStore) Replace(
	ctx context.Context,
	id uuid.UUID,
	newType domain.ActivityType,
	title string,
	hours float64,
) (int64, error) {
	args := m.Called(ctx, id, newType, title, hours)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCalendarActivityStore) ReplaceFuture(
	ctx context.Context,
	planID uuid.UUID,
	activityType domain.ActivityType,
	from time.Time,
	newType domain.ActivityType,
	title string,
	hours float64,
) (int64, error) {
	args := m.Called(ctx, planID, activityType, from, newType, title, hours)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCalendarActivityStore) DeleteByPlan(
	ctx context.Context,
	planID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCalendarActivityStore) WithTx(tx *sql.Tx) store.CalendarActivityStore {
	args := m.Called(tx)
	return args.Get(0).(store.CalendarActivityStore)
}
