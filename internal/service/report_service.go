package service

import (
	"context"

	"catalog-api/internal/apperror"
	"catalog-api/internal/model"
)

// ReportRepository is the storage contract for threshold queries.
type ReportRepository interface {
	FindByVariantStock(ctx context.Context, reportType model.ReportType, threshold int) ([]model.Product, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// StockReport classifies every variant of every matching product against the
// threshold. The threshold is always explicit; there is no default.
func (s *ReportService) StockReport(ctx context.Context, reportType model.ReportType, threshold int) ([]model.ReportRow, error) {
	if !reportType.Valid() {
		return nil, apperror.NewValidationError("invalid report type %q", string(reportType))
	}

	products, err := s.repo.FindByVariantStock(ctx, reportType, threshold)
	if err != nil {
		return nil, err
	}
	return Classify(products, threshold, reportType), nil
}

// Classify flattens products into per-variant report rows. Row order follows
// input product order, then variant order within each product. The deprecated
// product-level stock field never produces a row.
func Classify(products []model.Product, threshold int, reportType model.ReportType) []model.ReportRow {
	rows := make([]model.ReportRow, 0)
	for _, product := range products {
		for _, variant := range product.Variants {
			if !reportType.Matches(variant.Stock, threshold) {
				continue
			}
			rows = append(rows, model.ReportRow{
				ProductID:    product.ID,
				ProductName:  product.Name,
				VariantSKU:   variant.SKU,
				VariantStock: variant.Stock,
			})
		}
	}
	return rows
}
