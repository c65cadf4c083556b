// Package apiclient talks to a deployed scraping service over its public
// JSON surface (/estacion/{slug}, /estaciones, /status).
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/structures"
	"strings"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

const DefaultBaseURL = "https://api-esqui-scraping-production.up.railway.app"

// ServiceStatus is the body of /status.
type ServiceStatus struct {
	Status     string          `json:"status"`
	Version    string          `json:"version"`
	Estaciones []models.Resort `json:"estaciones"`
	Uptime     string          `json:"uptime"`
}

// ResponseError reports a non-2xx answer as "Error <code>: <status text>".
type ResponseError struct {
	Code int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Code, http.StatusText(e.Code))
}

type ClientInterface interface {
	GetResort(ctx context.Context, slug string) (*models.ScrapeResult, error)
	GetAllResorts(ctx context.Context) (*models.StationList, error)
	GetStatus(ctx context.Context) (*ServiceStatus, error)
}

type Client struct {
	http   *resty.Client
	logger providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) *Client {
	base := conf.Remote.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetTimeout(conf.Remote.Timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{http: client, logger: logger}
}

func (c *Client) GetResort(ctx context.Context, slug string) (*models.ScrapeResult, error) {
	var out models.ScrapeResult
	if err := c.get(ctx, "/estacion/"+url.PathEscape(slug), &out); err != nil {
		c.logger.Errorf(providers.TypeGet, "Remote lookup of %s failed: %s", slug, err)
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllResorts(ctx context.Context) (*models.StationList, error) {
	var out models.StationList
	if err := c.get(ctx, "/estaciones", &out); err != nil {
		c.logger.Errorf(providers.TypeGet, "Remote listing failed: %s", err)
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetStatus(ctx context.Context) (*ServiceStatus, error) {
	var out ServiceStatus
	if err := c.get(ctx, "/status", &out); err != nil {
		c.logger.Errorf(providers.TypeGet, "Remote status failed: %s", err)
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		Get(path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &ResponseError{Code: resp.StatusCode()}
	}
	return nil
}

var _ ClientInterface = (*Client)(nil)
