package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/metrics"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// Error messages returned by GET /api/products
const (
	msgFileNotFound    = "File not found"
	msgInvalidJSON     = "Invalid JSON"
	msgInvalidDataType = "Invalid data type"
	msgLoadFailed      = "Failed to load products"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler. m may be nil.
func NewProductHandler(service *service.ProductService, m *metrics.Metrics, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		metrics: m,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
// - 200: catalog document as stored
// - 404: catalog file missing
// - 500: invalid JSON, primitive document, or any other read failure
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.service.ListProducts(ctx)
	if err != nil {
		status, message, outcome := classifyLoadError(err)
		h.metrics.CatalogLoaded(outcome)

		switch outcome {
		case metrics.OutcomeNotFound:
			h.logger.WarnContext(ctx, "products file not found", "error", err)
		case metrics.OutcomeInvalidJSON:
			h.logger.ErrorContext(ctx, "error parsing products file", "error", err)
		case metrics.OutcomeInvalidType:
			h.logger.ErrorContext(ctx, "invalid products data type", "error", err)
		default:
			h.logger.ErrorContext(ctx, "error reading the products file", "error", err)
		}

		WriteError(w, status, message, h.logger)
		return
	}

	h.metrics.CatalogLoaded(metrics.OutcomeSuccess)
	WriteRawJSON(w, http.StatusOK, data, h.logger)
}

func classifyLoadError(err error) (status int, message, outcome string) {
	switch {
	case errors.Is(err, repository.ErrFileNotFound):
		return http.StatusNotFound, msgFileNotFound, metrics.OutcomeNotFound
	case errors.Is(err, repository.ErrInvalidJSON):
		return http.StatusInternalServerError, msgInvalidJSON, metrics.OutcomeInvalidJSON
	case errors.Is(err, repository.ErrInvalidDataType):
		return http.StatusInternalServerError, msgInvalidDataType, metrics.OutcomeInvalidType
	default:
		return http.StatusInternalServerError, msgLoadFailed, metrics.OutcomeReadFailure
	}
}
