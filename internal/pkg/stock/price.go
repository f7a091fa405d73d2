package stock

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const priceServiceName = "stock query service"

// maxPriceBody caps how much of a price response is read.
const maxPriceBody = 1 << 10

// PriceClient reads the latest price from the stock query service
type PriceClient struct {
	httpClient *http.Client
	endpoint   endpoint
}

func NewPriceClient(httpClient *http.Client, baseURL, pathTemplate string) *PriceClient {
	return &PriceClient{
		httpClient: httpClient,
		endpoint:   endpoint{baseURL: baseURL, pathTemplate: pathTemplate},
	}
}

// LatestPrice implements company.PriceClient.
func (c *PriceClient) LatestPrice(ctx context.Context, companyCode int64) (decimal.NullDecimal, error) {
	ctx, span := tracer.Start(ctx, "stock.price.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int64("company.code", companyCode)),
	)
	defer span.End()

	price, err := c.fetch(ctx, companyCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return price, err
}

func (c *PriceClient) fetch(ctx context.Context, companyCode int64) (decimal.NullDecimal, error) {
	req, err := newRequest(ctx, http.MethodGet, c.endpoint.url(companyCode))
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to get stock price for company %d: %w", companyCode, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(priceServiceName, resp); err != nil {
		return decimal.NullDecimal{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPriceBody))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to read stock price for company %d: %w", companyCode, err)
	}
	return ParsePrice(body)
}

// ParsePrice decodes a price body. It accepts a JSON number, a quoted decimal
// or bare decimal text; an empty or null body means no price.
func ParsePrice(body []byte) (decimal.NullDecimal, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return decimal.NullDecimal{}, nil
	}

	var price decimal.NullDecimal
	if err := price.UnmarshalJSON(body); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid stock price %q: %w", body, err)
	}
	return price, nil
}
