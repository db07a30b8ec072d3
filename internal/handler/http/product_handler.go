package http

import (
	"net/http"
	"strconv"

	"catalog-api/internal/apperror"
	"catalog-api/internal/logger"
	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"go.opentelemetry.io/otel"
)

type ProductHandler struct {
	products *service.ProductService
	stock    *service.StockService
}

var HttpProductHandlerTracer = otel.Tracer("HttpProductHandler")

func NewProductHandler(products *service.ProductService, stock *service.StockService) *ProductHandler {
	return &ProductHandler{
		products: products,
		stock:    stock,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var product model.Product
	if err := decodeJSON(r, &product); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.products.Create(ctx, &product)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	filter, err := listFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	products, err := h.products.List(ctx, filter)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.GetByID")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	product, err := h.products.GetByID(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Replace(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Replace")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var product model.Product
	if err := decodeJSON(r, &product); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.products.Replace(ctx, r.PathValue("id"), &product)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Patch")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var patch model.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.products.Patch(ctx, r.PathValue("id"), patch)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	if err := h.products.Delete(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// AdjustStock applies a signed stock delta to one variant, addressed by sku.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.AdjustStock")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var body struct {
		ProductID   string `json:"productId"`
		VariantSKU  string `json:"variantSku"`
		StockChange int    `json:"stockChange"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(ctx, w, err)
		return
	}

	product, err := h.stock.AdjustStock(ctx, body.ProductID, body.VariantSKU, body.StockChange)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// SetVariantStock overwrites the stock of the variant named in the path.
func (h *ProductHandler) SetVariantStock(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.SetVariantStock")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var body struct {
		Stock *int `json:"stock"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(ctx, w, err)
		return
	}
	if body.Stock == nil {
		writeError(ctx, w, apperror.NewValidationError("stock is required"))
		return
	}

	product, err := h.stock.SetVariantStock(ctx, r.PathValue("id"), r.PathValue("sku"), *body.Stock)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// SetProductStock serves the deprecated product-level stock field.
func (h *ProductHandler) SetProductStock(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.SetProductStock")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var body struct {
		Stock *int `json:"stock"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(ctx, w, err)
		return
	}
	if body.Stock == nil {
		writeError(ctx, w, apperror.NewValidationError("stock is required"))
		return
	}

	product, err := h.products.SetProductStock(ctx, r.PathValue("id"), *body.Stock)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func listFilter(r *http.Request) (model.ProductFilter, error) {
	q := r.URL.Query()
	filter := model.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		InStock:  q.Get("inStock") == "true",
	}

	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperror.NewValidationError("invalid minPrice %q", raw)
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, apperror.NewValidationError("invalid maxPrice %q", raw)
		}
		filter.MaxPrice = &v
	}

	return filter, nil
}
