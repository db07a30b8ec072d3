package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// ReportType selects which side of the stock threshold a report covers.
type ReportType string

const (
	LowStock  ReportType = "low-stock"
	HighStock ReportType = "high-stock"
)

func (t ReportType) Valid() bool {
	return t == LowStock || t == HighStock
}

// Matches reports whether a variant stock count falls into this report:
// stock <= threshold for low-stock, stock > threshold for high-stock.
func (t ReportType) Matches(stock, threshold int) bool {
	if t == LowStock {
		return stock <= threshold
	}
	return stock > threshold
}

// ReportRow is one variant of one product in a stock report.
type ReportRow struct {
	ProductID    primitive.ObjectID `json:"productId"`
	ProductName  string             `json:"productName"`
	VariantSKU   string             `json:"variantSku"`
	VariantStock int                `json:"variantStock"`
}
