// Package client fetches the product catalog from the API server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

const productsPath = "/api/products"

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 10 << 20

// APIError is returned when the server answers with a non-2xx status
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("products request failed with status %d", e.Status)
	}
	return fmt.Sprintf("products request failed with status %d: %s", e.Status, e.Message)
}

// ProductClient implements storefront.ProductFetcher over HTTP
type ProductClient struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	validate   *validator.Validate
}

// NewProductClient creates a client for the server at baseURL.
// A zero timeout leaves the request bounded only by ctx.
func NewProductClient(baseURL string, timeout time.Duration) (*ProductClient, error) {
	endpoint, err := url.JoinPath(baseURL, productsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &ProductClient{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		validate:   newValidator(),
	}, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// FetchProducts performs GET /api/products and decodes the product array
func (c *ProductClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return nil, apiErr
	}

	var products []models.Product
	if err := json.NewDecoder(body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	for i := range products {
		if err := c.validate.Struct(products[i]); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return nil, fmt.Errorf("invalid product at index %d: field %s failed %q check", i, verrs[0].Field(), verrs[0].Tag())
			}
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
	}

	return products, nil
}
