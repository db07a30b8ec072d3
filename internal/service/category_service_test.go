package service_test

import (
	"context"
	"testing"

	"catalog-api/internal/apperror"
	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCategoryRepository is a mock implementation of service.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Insert(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Replace(ctx context.Context, id primitive.ObjectID, updated *model.Category) (*model.Category, error) {
	args := m.Called(ctx, id, updated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Patch(ctx context.Context, id primitive.ObjectID, patch model.CategoryPatch) (*model.Category, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryCreateTrimsName(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := service.NewCategoryService(mockRepo)

	category := &model.Category{Name: "  Audio  "}
	mockRepo.On("Insert", mock.Anything, category).Return(nil).Once()

	created, err := svc.Create(context.Background(), category)

	require.NoError(t, err)
	assert.Equal(t, "Audio", created.Name)
	mockRepo.AssertExpectations(t)
}

func TestCategoryCreateEmptyName(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := service.NewCategoryService(mockRepo)

	_, err := svc.Create(context.Background(), &model.Category{Name: "   "})

	var appErr *apperror.ValidationError
	assert.ErrorAs(t, err, &appErr)
	mockRepo.AssertNotCalled(t, "Insert")
}

func TestCategoryCreateConflict(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := service.NewCategoryService(mockRepo)

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(apperror.NewConflictError("category %q already exists", "Audio")).Once()

	_, err := svc.Create(context.Background(), &model.Category{Name: "Audio"})

	var appErr *apperror.ConflictError
	assert.ErrorAs(t, err, &appErr)
	mockRepo.AssertExpectations(t)
}

func TestCategoryPatchEmptyName(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := service.NewCategoryService(mockRepo)

	empty := " "
	_, err := svc.Patch(context.Background(), primitive.NewObjectID().Hex(), model.CategoryPatch{Name: &empty})

	var appErr *apperror.ValidationError
	assert.ErrorAs(t, err, &appErr)
	mockRepo.AssertNotCalled(t, "Patch")
}

func TestCategoryDeleteInvalidID(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := service.NewCategoryService(mockRepo)

	err := svc.Delete(context.Background(), "bogus")

	var appErr *apperror.ValidationError
	assert.ErrorAs(t, err, &appErr)
	mockRepo.AssertNotCalled(t, "Delete")
}
