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

type CategoryRepository struct {
	collection *mongo.Collection
}

var CategoryRepositoryTracer = otel.Tracer("CategoryRepository")

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

// EnsureIndexes creates the unique index backing category name uniqueness.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CategoryRepository) Insert(ctx context.Context, category *model.Category) error {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	now := time.Now().UTC()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.NewConflictError("category %q already exists", category.Name)
	}
	if err != nil {
		return apperror.NewInternalError("insert category", err)
	}
	return nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.FindAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.NewInternalError("query categories", err)
	}
	defer cursor.Close(ctx)

	categories := make([]model.Category, 0)
	for cursor.Next(ctx) {
		var category model.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, apperror.NewInternalError("decode category", err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var category model.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFoundError("category %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperror.NewInternalError("find category", err)
	}
	return &category, nil
}

// Replace overwrites name and description; timestamps stay server-owned.
func (r *CategoryRepository) Replace(ctx context.Context, id primitive.ObjectID, updated *model.Category) (*model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Replace")
	defer span.End()
	logger.Info(ctx, "Repository")

	set := bson.M{
		"name":        updated.Name,
		"description": updated.Description,
		"updatedAt":   time.Now().UTC(),
	}
	return r.findOneAndUpdate(ctx, id, set)
}

func (r *CategoryRepository) Patch(ctx context.Context, id primitive.ObjectID, patch model.CategoryPatch) (*model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Patch")
	defer span.End()
	logger.Info(ctx, "Repository")

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	set["updatedAt"] = time.Now().UTC()
	return r.findOneAndUpdate(ctx, id, set)
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.NewInternalError("delete category", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("category %s not found", id.Hex())
	}
	return nil
}

func (r *CategoryRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Category, error) {
	var category model.Category
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NewNotFoundError("category %s not found", id.Hex())
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperror.NewConflictError("category name already in use")
	}
	if err != nil {
		return nil, apperror.NewInternalError("update category", err)
	}
	return &category, nil
}
