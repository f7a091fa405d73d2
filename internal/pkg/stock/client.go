package stock

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/estock-market/company-service/internal/config"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

const (
	companyCodePlaceholder = "{companyCode}"
	headerRequestID        = "X-Request-ID"
	maxErrorBody           = 512
)

var tracer = otel.Tracer("company-service/stock")

// endpoint is a base URL plus a path template with a {companyCode} placeholder.
type endpoint struct {
	baseURL      string
	pathTemplate string
}

func (e endpoint) url(companyCode int64) string {
	path := strings.ReplaceAll(e.pathTemplate, companyCodePlaceholder, strconv.FormatInt(companyCode, 10))
	return strings.TrimRight(e.baseURL, "/") + path
}

// APIError represents a non-2xx answer from a stock service
type APIError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.StatusCode, e.Message)
}

// newHTTPClient builds the shared client; the timeout bounds every outbound call.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewClients builds the price and command clients from configuration.
func NewClients(cfg config.StockConfig) (*PriceClient, *CommandClient) {
	httpClient := newHTTPClient(cfg.Timeout)
	return NewPriceClient(httpClient, cfg.QueryBaseURL, cfg.PricePath),
		NewCommandClient(httpClient, cfg.CommandBaseURL, cfg.DeletePath)
}

// newRequest builds an outbound request carrying the caller's request id.
func newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}

	requestID := chiMiddleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func checkStatus(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Service: service, StatusCode: resp.StatusCode, Message: msg}
}
