package service

import (
	"context"
	"strings"

	"catalog-api/internal/apperror"
	"catalog-api/internal/model"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// ProductRepository is the storage contract the product service depends on.
type ProductRepository interface {
	Insert(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	Replace(ctx context.Context, id primitive.ObjectID, updated *model.Product) (*model.Product, error)
	Patch(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetProductStock(ctx context.Context, id primitive.ObjectID, stock int) (*model.Product, error)
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *ProductService) Replace(ctx context.Context, id string, p *model.Product) (*model.Product, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.repo.Replace(ctx, oid, p)
}

func (s *ProductService) Patch(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	if err := validateProductPatch(patch); err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, oid, patch)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := parseProductID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// SetProductStock serves the deprecated product-level stock path.
func (s *ProductService) SetProductStock(ctx context.Context, id string, stock int) (*model.Product, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, apperror.NewValidationError("stock must not be negative")
	}
	return s.repo.SetProductStock(ctx, oid, stock)
}

func parseProductID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NewValidationError("invalid product id %q", id)
	}
	return oid, nil
}

func validateProduct(p *model.Product) error {
	if err := validate.Struct(p); err != nil {
		return apperror.NewValidationError("invalid product: %s", validationMessage(err))
	}
	return validateVariants(p.Variants)
}

func validateProductPatch(patch model.ProductPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return apperror.NewValidationError("name must not be empty")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return apperror.NewValidationError("price must not be negative")
	}
	if patch.Discount != nil && (*patch.Discount < 0 || *patch.Discount > 100) {
		return apperror.NewValidationError("discount must be between 0 and 100")
	}
	if patch.Variants != nil {
		return validateVariants(*patch.Variants)
	}
	return nil
}

// validateVariants enforces the per-product variant rules: sku present and
// unique within the product, stock never negative.
func validateVariants(variants []model.Variant) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if v.SKU == "" {
			return apperror.NewValidationError("variant sku must not be empty")
		}
		if v.Stock < 0 {
			return apperror.NewValidationError("variant %q stock must not be negative", v.SKU)
		}
		if _, ok := seen[v.SKU]; ok {
			return apperror.NewConflictError("duplicate variant sku %q", v.SKU)
		}
		seen[v.SKU] = struct{}{}
	}
	return nil
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
