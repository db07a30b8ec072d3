package http

import (
	"net/http"

	"catalog-api/internal/logger"
	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"go.opentelemetry.io/otel"
)

type CategoryHandler struct {
	service *service.CategoryService
}

var HttpCategoryHandlerTracer = otel.Tracer("HttpCategoryHandler")

func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	var category model.Category
	if err := decodeJSON(r, &category); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.service.Create(ctx, &category)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	categories, err := h.service.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.GetByID")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	category, err := h.service.GetByID(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Replace")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	var category model.Category
	if err := decodeJSON(r, &category); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.service.Replace(ctx, r.PathValue("id"), &category)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CategoryHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Patch")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	var patch model.CategoryPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.service.Patch(ctx, r.PathValue("id"), patch)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	if err := h.service.Delete(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
