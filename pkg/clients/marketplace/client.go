package marketplace

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/livestock-pricing/internal/config"
	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

// Client exposes the marketplace API operations used by the price-list flows.
type Client interface {
	SearchFarmProduce(ctx context.Context, term string) ([]models.FarmProduce, error)
	SearchUsers(ctx context.Context, term string) ([]models.User, error)
	CreatePriceList(ctx context.Context, pl models.PriceList, overwrite bool) (*models.PriceList, error)
	GetPriceList(ctx context.Context, id string) (*models.PriceList, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a marketplace client from configuration. Idempotent reads are
// retried on transport failures and 5xx responses.
func NewClient(cfg config.MarketplaceConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryWait * 4).
		AddRetryCondition(retryReads)

	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{httpClient: restyClient}
}

func retryReads(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type itemEnvelope[T any] struct {
	Data T `json:"data"`
}

// SearchFarmProduce runs a name search against the farm-produce catalog.
func (c *APIClient) SearchFarmProduce(ctx context.Context, term string) ([]models.FarmProduce, error) {
	result := new(listEnvelope[models.FarmProduce])
	if err := c.get(ctx, "search farm produce", "/farm-produce", nil, map[string]string{"search": term}, result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// SearchUsers runs a name search against marketplace accounts.
func (c *APIClient) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	result := new(listEnvelope[models.User])
	if err := c.get(ctx, "search users", "/users", nil, map[string]string{"search": term}, result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetPriceList fetches a stored price list in minor units.
func (c *APIClient) GetPriceList(ctx context.Context, id string) (*models.PriceList, error) {
	result := new(itemEnvelope[models.PriceList])
	if err := c.get(ctx, "get price list", "/price-lists/{id}", map[string]string{"id": id}, nil, result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

// CreatePriceList submits a price list. A duplicate for the same client and date
// fails with ErrConflict unless overwrite is set.
func (c *APIClient) CreatePriceList(ctx context.Context, pl models.PriceList, overwrite bool) (*models.PriceList, error) {
	const op = "create price list"

	result := new(itemEnvelope[models.PriceList])
	apiErr := new(errorBody)

	req := c.httpClient.R().
		SetContext(ctx).
		SetBody(pl).
		SetResult(result).
		SetError(apiErr)
	if overwrite {
		req.SetQueryParam("overwrite", strconv.FormatBool(overwrite))
	}

	resp, err := req.Post("/price-lists")
	if err != nil {
		return nil, networkError(op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError(op, resp.StatusCode(), apiErr)
	}

	return &result.Data, nil
}

// get issues a GET request. Path parameters fill "{name}" segments and are escaped.
func (c *APIClient) get(ctx context.Context, op, path string, pathParams, query map[string]string, result any) error {
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetQueryParams(query).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return networkError(op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return statusError(op, resp.StatusCode(), apiErr)
	}
	return nil
}
