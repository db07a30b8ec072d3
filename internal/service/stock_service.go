package service

import (
	"context"
	"errors"

	"catalog-api/internal/apperror"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockRepository is the storage contract for variant stock mutations. Both
// mutations are single conditional updates at the storage layer; there is no
// read-modify-write anywhere on this path.
type StockRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	IncrementVariantStock(ctx context.Context, id primitive.ObjectID, sku string, delta int) (*model.Product, error)
	SetVariantStock(ctx context.Context, id primitive.ObjectID, sku string, stock int) (*model.Product, error)
}

type StockService struct {
	repo StockRepository
}

func NewStockService(repo StockRepository) *StockService {
	return &StockService{repo: repo}
}

// AdjustStock applies a delta to the variant addressed by sku. A delta that
// would take stock below zero matches nothing in storage, so the document is
// left unchanged and the caller gets a validation error.
func (s *StockService) AdjustStock(ctx context.Context, productID, sku string, delta int) (*model.Product, error) {
	oid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, apperror.NewValidationError("variant sku is required")
	}

	product, err := s.repo.IncrementVariantStock(ctx, oid, sku, delta)
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, s.classifyNoMatch(ctx, oid, sku, delta < 0)
	}
	return product, err
}

// SetVariantStock overwrites the stock of the variant addressed by sku.
// Setting the same value twice is a no-op the second time.
func (s *StockService) SetVariantStock(ctx context.Context, productID, sku string, stock int) (*model.Product, error) {
	oid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, apperror.NewValidationError("variant sku is required")
	}
	if stock < 0 {
		return nil, apperror.NewValidationError("stock must not be negative")
	}

	product, err := s.repo.SetVariantStock(ctx, oid, sku, stock)
	if errors.Is(err, repository.ErrNoMatch) {
		return nil, s.classifyNoMatch(ctx, oid, sku, false)
	}
	return product, err
}

// classifyNoMatch resolves why a conditional variant update matched nothing:
// the product is gone, the variant is gone, or (for guarded decrements) the
// stock floor blocked the update.
func (s *StockService) classifyNoMatch(ctx context.Context, id primitive.ObjectID, sku string, guarded bool) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.Variant(sku) == nil {
		return apperror.NewNotFoundError("variant %q not found in product %s", sku, id.Hex())
	}
	if guarded {
		return apperror.NewValidationError("stock for variant %q cannot go below zero", sku)
	}
	// The variant exists now but did not match a moment ago: a concurrent
	// writer replaced the variants array between the two queries.
	return apperror.NewConflictError("product %s changed concurrently, retry", id.Hex())
}
