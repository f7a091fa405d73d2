package stock

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const commandServiceName = "stock command service"

// CommandClient notifies the stock command service about company deletions
type CommandClient struct {
	httpClient *http.Client
	endpoint   endpoint
}

func NewCommandClient(httpClient *http.Client, baseURL, pathTemplate string) *CommandClient {
	return &CommandClient{
		httpClient: httpClient,
		endpoint:   endpoint{baseURL: baseURL, pathTemplate: pathTemplate},
	}
}

// DeleteStocks implements company.CommandClient.
func (c *CommandClient) DeleteStocks(ctx context.Context, companyCode int64) error {
	ctx, span := tracer.Start(ctx, "stock.command.delete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int64("company.code", companyCode)),
	)
	defer span.End()

	err := c.delete(ctx, companyCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *CommandClient) delete(ctx context.Context, companyCode int64) error {
	req, err := newRequest(ctx, http.MethodDelete, c.endpoint.url(companyCode))
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete stocks for company %d: %w", companyCode, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(commandServiceName, resp); err != nil {
		return err
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
