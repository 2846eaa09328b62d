package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"piaas.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock PaymentIntentRepository
type MockPaymentIntentRepository struct {
	mock.Mock
}

func (m *MockPaymentIntentRepository) Create(ctx context.Context, intent *entities.PaymentIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *MockPaymentIntentRepository) GetByIntentID(ctx context.Context, intentID string) (*entities.PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) Transition(ctx context.Context, intentID string, from []entities.IntentStatus, to entities.IntentStatus, fields map[string]interface{}) error {
	args := m.Called(ctx, intentID, from, to, fields)
	return args.Error(0)
}

func (m *MockPaymentIntentRepository) PromoteStuckCreated(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// Mock VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

// Mock WebhookEventRepository
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) Create(ctx context.Context, event *entities.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WebhookEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WebhookEvent), args.Error(1)
}

func (m *MockWebhookEventRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*entities.WebhookEvent, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WebhookEvent), args.Error(1)
}

func (m *MockWebhookEventRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entities.WebhookEvent, error) {
	args := m.Called(ctx, vendorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WebhookEvent), args.Error(1)
}

func (m *MockWebhookEventRepository) UpdateAttempt(ctx context.Context, event *entities.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entities.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*entities.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, subscriptionID string, status entities.SubscriptionStatus) error {
	args := m.Called(ctx, subscriptionID, status)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) AdvanceRenewal(ctx context.Context, subscriptionID string, next time.Time) error {
	args := m.Called(ctx, subscriptionID, next)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*entities.Subscription, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Subscription), args.Error(1)
}

// Mock WebhookEnqueuer
type MockWebhookEnqueuer struct {
	mock.Mock
}

func (m *MockWebhookEnqueuer) Enqueue(ctx context.Context, vendorID uuid.UUID, eventType string, payload map[string]interface{}) error {
	args := m.Called(ctx, vendorID, eventType, payload)
	return args.Error(0)
}
