package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"orderdesk/internal/domain/order"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Save(ctx context.Context, rec order.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepo) FindByID(ctx context.Context, id string) (*order.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Record), args.Error(1)
}

func TestService_HandleRecord(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	rec := order.Record{ID: "5", CustomerName: "Jane"}
	repo.On("Save", ctx, rec).Return(nil)

	assert.NoError(t, svc.HandleRecord(ctx, rec))
	repo.AssertExpectations(t)
}

func TestService_HandleRecord_RejectsEmptyID(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	assert.Error(t, svc.HandleRecord(context.Background(), order.Record{}))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_HandleRecord_SaveError(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)
	ctx := context.Background()

	rec := order.Record{ID: "5"}
	repo.On("Save", ctx, rec).Return(errors.New("db down"))

	err := svc.HandleRecord(ctx, rec)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "save record")
}
