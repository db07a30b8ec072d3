package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is one purchasable configuration (size/color) of a Product.
// The SKU is the variant key: unique within its product, enforced at write time.
type Variant struct {
	SKU   string `json:"sku" bson:"sku" validate:"required"`
	Size  string `json:"size,omitempty" bson:"size,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Stock int    `json:"stock" bson:"stock" validate:"gte=0"`
}

type Product struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name" validate:"required"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64             `json:"price" bson:"price" validate:"gte=0"`
	Discount    float64             `json:"discount" bson:"discount" validate:"gte=0,lte=100"`
	Category    *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Variants    []Variant           `json:"variants" bson:"variants" validate:"dive"`

	// Deprecated: product-level stock predates variants and is kept only for
	// the legacy PATCH /products/{id}/stock path. Reports ignore it.
	Stock int `json:"stock,omitempty" bson:"stock,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// FinalPrice is derived from price and discount. Computed, never persisted.
func (p *Product) FinalPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// Variant returns the variant with the given sku, or nil.
func (p *Product) Variant(sku string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}

// ProductFilter narrows a product listing. Zero-valued fields impose no
// constraint; set fields compose with logical AND.
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

// ProductPatch carries the top-level fields of a partial update. Nil fields
// are left untouched.
type ProductPatch struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Discount    *float64   `json:"discount,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Variants    *[]Variant `json:"variants,omitempty"`
}
