package repository

import (
	"testing"

	"catalog-api/internal/apperror"
	"catalog-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilterEmpty(t *testing.T) {
	query, err := buildProductFilter(model.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestBuildProductFilterComposition(t *testing.T) {
	category := primitive.NewObjectID()
	min, max := 10.0, 20.0

	query, err := buildProductFilter(model.ProductFilter{
		Search:   "headphones",
		Category: category.Hex(),
		MinPrice: &min,
		MaxPrice: &max,
		InStock:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$search": "headphones"}, query["$text"])
	assert.Equal(t, category, query["category"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 20.0}, query["price"])
	assert.Equal(t, bson.M{"$gt": 0}, query["variants.stock"])
}

func TestBuildProductFilterSingleBound(t *testing.T) {
	min := 10.0
	query, err := buildProductFilter(model.ProductFilter{MinPrice: &min})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$gte": 10.0}, query["price"])
}

func TestBuildProductFilterBadCategory(t *testing.T) {
	_, err := buildProductFilter(model.ProductFilter{Category: "not-an-id"})
	var appErr *apperror.ValidationError
	assert.ErrorAs(t, err, &appErr)
}

func TestBuildProductPatchOnlyProvidedFields(t *testing.T) {
	name := "New name"
	price := 12.5

	set, err := buildProductPatch(model.ProductPatch{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"name": "New name", "price": 12.5}, set)
}

func TestVariantMatchFilterGuardsNegativeDelta(t *testing.T) {
	id := primitive.NewObjectID()

	// Decrements carry the stock floor in the element match.
	filter := variantMatchFilter(id, "A1", -5)
	assert.Equal(t, bson.M{
		"_id":      id,
		"variants": bson.M{"$elemMatch": bson.M{"sku": "A1", "stock": bson.M{"$gte": 5}}},
	}, filter)

	// Increments match on sku alone.
	filter = variantMatchFilter(id, "A1", 3)
	assert.Equal(t, bson.M{
		"_id":      id,
		"variants": bson.M{"$elemMatch": bson.M{"sku": "A1"}},
	}, filter)
}

func TestVariantStockFilter(t *testing.T) {
	assert.Equal(t, bson.M{"variants.stock": bson.M{"$lte": 2}}, variantStockFilter(model.LowStock, 2))
	assert.Equal(t, bson.M{"variants.stock": bson.M{"$gt": 10}}, variantStockFilter(model.HighStock, 10))
}
