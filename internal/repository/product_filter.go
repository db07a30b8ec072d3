package repository

import (
	"catalog-api/internal/apperror"
	"catalog-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildProductFilter translates a ProductFilter into a Mongo query document.
// Set fields compose with AND; unset fields add nothing.
func buildProductFilter(f model.ProductFilter) (bson.M, error) {
	query := bson.M{}

	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}
	if f.Category != "" {
		oid, err := primitive.ObjectIDFromHex(f.Category)
		if err != nil {
			return nil, apperror.NewValidationError("invalid category id %q", f.Category)
		}
		query["category"] = oid
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if f.InStock {
		query["variants.stock"] = bson.M{"$gt": 0}
	}

	return query, nil
}

// buildProductPatch translates the provided fields of a partial update into a
// $set document.
func buildProductPatch(p model.ProductPatch) (bson.M, error) {
	set := bson.M{}

	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Discount != nil {
		set["discount"] = *p.Discount
	}
	if p.Category != nil {
		oid, err := primitive.ObjectIDFromHex(*p.Category)
		if err != nil {
			return nil, apperror.NewValidationError("invalid category id %q", *p.Category)
		}
		set["category"] = oid
	}
	if p.Variants != nil {
		set["variants"] = *p.Variants
	}

	return set, nil
}

// variantMatchFilter matches the product holding the variant addressed by
// sku. A negative delta adds the stock floor to the element match, which is
// what keeps the subsequent $inc from driving stock below zero.
func variantMatchFilter(id primitive.ObjectID, sku string, delta int) bson.M {
	elem := bson.M{"sku": sku}
	if delta < 0 {
		elem["stock"] = bson.M{"$gte": -delta}
	}
	return bson.M{
		"_id":      id,
		"variants": bson.M{"$elemMatch": elem},
	}
}

// variantStockFilter matches products with at least one variant at or below
// the threshold (low-stock) or strictly above it (high-stock).
func variantStockFilter(reportType model.ReportType, threshold int) bson.M {
	op := "$gt"
	if reportType == model.LowStock {
		op = "$lte"
	}
	return bson.M{"variants.stock": bson.M{op: threshold}}
}
