package router

import (
	"net/http"

	handler "catalog-api/internal/handler/http"
)

// New wires every route to its handler. Literal segments win over wildcards,
// so /api/products/stock and /api/products/report/{type} take precedence over
// /api/products/{id}.
func New(products *handler.ProductHandler, categories *handler.CategoryHandler, reports *handler.ReportHandler, health *handler.HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/products", products.Create)
	mux.HandleFunc("GET /api/products", products.List)
	mux.HandleFunc("GET /api/products/{id}", products.GetByID)
	mux.HandleFunc("PUT /api/products/{id}", products.Replace)
	mux.HandleFunc("PATCH /api/products/{id}", products.Patch)
	mux.HandleFunc("DELETE /api/products/{id}", products.Delete)

	mux.HandleFunc("PATCH /api/products/stock", products.AdjustStock)
	mux.HandleFunc("PATCH /api/products/{id}/stock", products.SetProductStock)
	mux.HandleFunc("PATCH /api/products/{id}/variants/{sku}", products.SetVariantStock)

	mux.HandleFunc("GET /api/products/report/{type}", reports.ByType)
	mux.HandleFunc("GET /api/reports/low-stock", reports.LowStock)
	mux.HandleFunc("GET /api/reports/high-stock", reports.HighStock)

	mux.HandleFunc("POST /api/categories", categories.Create)
	mux.HandleFunc("GET /api/categories", categories.List)
	mux.HandleFunc("GET /api/categories/{id}", categories.GetByID)
	mux.HandleFunc("PUT /api/categories/{id}", categories.Replace)
	mux.HandleFunc("PATCH /api/categories/{id}", categories.Patch)
	mux.HandleFunc("DELETE /api/categories/{id}", categories.Delete)

	mux.HandleFunc("GET /healthz", health.Check)

	return mux
}
