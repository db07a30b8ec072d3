package service

import (
	"context"
	"strings"

	"catalog-api/internal/apperror"
	"catalog-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryRepository is the storage contract the category service depends on.
type CategoryRepository interface {
	Insert(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error)
	Replace(ctx context.Context, id primitive.ObjectID, updated *model.Category) (*model.Category, error)
	Patch(ctx context.Context, id primitive.ObjectID, patch model.CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, apperror.NewValidationError("category name must not be empty")
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*model.Category, error) {
	oid, err := parseCategoryID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *CategoryService) Replace(ctx context.Context, id string, c *model.Category) (*model.Category, error) {
	oid, err := parseCategoryID(id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, apperror.NewValidationError("category name must not be empty")
	}
	return s.repo.Replace(ctx, oid, c)
}

func (s *CategoryService) Patch(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	oid, err := parseCategoryID(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperror.NewValidationError("category name must not be empty")
		}
		patch.Name = &trimmed
	}
	return s.repo.Patch(ctx, oid, patch)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := parseCategoryID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

func parseCategoryID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NewValidationError("invalid category id %q", id)
	}
	return oid, nil
}
