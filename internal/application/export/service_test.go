package export

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"orderdesk/pkg/logger"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) ListOrders(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRecord(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func TestService_Sync_Success(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockPublisher := new(MockPublisher)
	service := NewService(mockFetcher, JSONEncoder{}, mockPublisher, logger.NewNop())

	ctx := context.Background()
	orders := []json.RawMessage{
		json.RawMessage(`{"id": 1, "customerName": "Jane", "total": 10, "status": 4}`),
		json.RawMessage(`{"id": 2, "customerName": "Bob", "total": 20, "status": 2}`),
	}

	mockFetcher.On("ListOrders", ctx).Return(orders, nil)
	mockPublisher.On("PublishRecord", ctx, mock.MatchedBy(func(payload []byte) bool {
		return json.Valid(payload)
	})).Return(nil).Twice()

	count, err := service.Sync(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	mockFetcher.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestService_Sync_FetchError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockPublisher := new(MockPublisher)
	service := NewService(mockFetcher, JSONEncoder{}, mockPublisher, logger.NewNop())

	ctx := context.Background()
	mockFetcher.On("ListOrders", ctx).Return(nil, errors.New("fetch failed"))

	count, err := service.Sync(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch orders")
	assert.Equal(t, 0, count)
	mockPublisher.AssertNotCalled(t, "PublishRecord", mock.Anything, mock.Anything)
}

func TestService_Sync_PublishErrorStopsRun(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockPublisher := new(MockPublisher)
	service := NewService(mockFetcher, JSONEncoder{}, mockPublisher, logger.NewNop())

	ctx := context.Background()
	orders := []json.RawMessage{
		json.RawMessage(`{"id": 1}`),
		json.RawMessage(`{"id": 2}`),
	}

	mockFetcher.On("ListOrders", ctx).Return(orders, nil)
	mockPublisher.On("PublishRecord", ctx, mock.Anything).Return(errors.New("publish failed")).Once()

	count, err := service.Sync(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "publish record")
	assert.Equal(t, 0, count)
}

func TestService_Sync_SkipsInvalidPayloads(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockPublisher := new(MockPublisher)
	service := NewService(mockFetcher, JSONEncoder{}, mockPublisher, logger.NewNop())

	ctx := context.Background()
	orders := []json.RawMessage{
		json.RawMessage(`{invalid json}`),
		json.RawMessage(`{"id": 2, "status": 10}`),
	}

	mockFetcher.On("ListOrders", ctx).Return(orders, nil)
	mockPublisher.On("PublishRecord", ctx, mock.Anything).Return(nil).Once()

	count, err := service.Sync(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_Sync_EmptyList(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockPublisher := new(MockPublisher)
	service := NewService(mockFetcher, JSONEncoder{}, mockPublisher, logger.NewNop())

	ctx := context.Background()
	mockFetcher.On("ListOrders", ctx).Return([]json.RawMessage{}, nil)

	count, err := service.Sync(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	mockPublisher.AssertNotCalled(t, "PublishRecord", mock.Anything, mock.Anything)
}
