package repository

import (
	"context"
	"errors"
	"time"

	"catalog-api/internal/apperror"
	"catalog-api/internal/logger"
	"catalog-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// ErrNoMatch reports that a conditional update matched no document. The
// caller decides whether that means a missing product, a missing variant or a
// violated stock floor.
var ErrNoMatch = errors.New("no document matched")

type ProductRepository struct {
	collection *mongo.Collection
}

var ProductRepositoryTracer = otel.Tracer("ProductRepository")

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// EnsureIndexes creates the text index backing free-text search.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	return err
}

func (r *ProductRepository) Insert(ctx context.Context, product *model.Product) error {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return apperror.NewInternalError("insert product", err)
	}
	return nil
}

func (r *ProductRepository) FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	query, err := buildProductFilter(filter)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, apperror.NewInternalError("query products", err)
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0)
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, apperror.NewInternalError("decode product", err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFoundError("product %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperror.NewInternalError("find product", err)
	}
	return &product, nil
}

// Replace overwrites every client-settable field. The id and creation
// timestamp stay with the document.
func (r *ProductRepository) Replace(ctx context.Context, id primitive.ObjectID, updated *model.Product) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Replace")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{
		"$set": bson.M{
			"name":        updated.Name,
			"description": updated.Description,
			"price":       updated.Price,
			"discount":    updated.Discount,
			"category":    updated.Category,
			"variants":    updated.Variants,
			"stock":       updated.Stock,
		},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update, apperror.NewNotFoundError("product %s not found", id.Hex()))
}

func (r *ProductRepository) Patch(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Patch")
	defer span.End()
	logger.Info(ctx, "Repository")

	set, err := buildProductPatch(patch)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, apperror.NewNotFoundError("product %s not found", id.Hex()))
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.NewInternalError("delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("product %s not found", id.Hex())
	}
	return nil
}

// SetProductStock sets the deprecated product-level stock field.
func (r *ProductRepository) SetProductStock(ctx context.Context, id primitive.ObjectID, stock int) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.SetProductStock")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{"$set": bson.M{"stock": stock}}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update, apperror.NewNotFoundError("product %s not found", id.Hex()))
}

// IncrementVariantStock applies a stock delta to one variant in a single
// conditional update. For negative deltas the match condition carries the
// non-negativity floor, so a delta that would cross below zero matches
// nothing and the document is untouched.
func (r *ProductRepository) IncrementVariantStock(ctx context.Context, id primitive.ObjectID, sku string, delta int) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.IncrementVariantStock")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := variantMatchFilter(id, sku, delta)
	update := bson.M{"$inc": bson.M{"variants.$.stock": delta}}

	var product model.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, apperror.NewInternalError("increment variant stock", err)
	}
	return &product, nil
}

// SetVariantStock overwrites one variant's stock. The value is validated by
// the caller.
func (r *ProductRepository) SetVariantStock(ctx context.Context, id primitive.ObjectID, sku string, stock int) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.SetVariantStock")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"_id": id, "variants.sku": sku}
	update := bson.M{"$set": bson.M{"variants.$.stock": stock}}

	var product model.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, apperror.NewInternalError("set variant stock", err)
	}
	return &product, nil
}

// FindByVariantStock returns products with at least one variant on the given
// side of the threshold.
func (r *ProductRepository) FindByVariantStock(ctx context.Context, reportType model.ReportType, threshold int) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByVariantStock")
	defer span.End()
	logger.Info(ctx, "Repository")

	cursor, err := r.collection.Find(ctx, variantStockFilter(reportType, threshold))
	if err != nil {
		return nil, apperror.NewInternalError("query stock report", err)
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0)
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, apperror.NewInternalError("decode product", err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *ProductRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, notFound error) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound
	}
	if err != nil {
		return nil, apperror.NewInternalError("update product", err)
	}
	return &product, nil
}
