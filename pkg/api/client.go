package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	myErrors "github.com/kekaadrenalin/hookedit/pkg/errors"
	"github.com/kekaadrenalin/hookedit/pkg/types"
)

const searchLimit = 20

type Config struct {
	BaseURL  string
	Username string
	Password string
	Token    string
	Timeout  time.Duration
}

// Client talks to the webhooks API. It implements editor.WebhookAPI and editor.PackageSearcher.
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	httpClient *http.Client
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type SearchResponse struct {
	Packages []types.Package `json:"packages"`
}

func NewClient(config Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		username:   config.Username,
		password:   config.Password,
		token:      config.Token,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (c *Client) CreateWebhook(ctx context.Context, webhook types.Webhook, org string) error {
	webhook.WebhookID = ""

	return c.do(ctx, http.MethodPost, "/webhooks/"+scope(org), webhook, nil)
}

func (c *Client) UpdateWebhook(ctx context.Context, webhook types.Webhook, org string) error {
	if webhook.WebhookID == "" {
		return fmt.Errorf("webhook id is required to update a webhook")
	}

	return c.do(ctx, http.MethodPut, "/webhooks/"+url.PathEscape(webhook.WebhookID)+"/"+scope(org), webhook, nil)
}

func (c *Client) GetWebhook(ctx context.Context, webhookID string, org string) (types.Webhook, error) {
	var webhook types.Webhook
	err := c.do(ctx, http.MethodGet, "/webhooks/"+url.PathEscape(webhookID)+"/"+scope(org), nil, &webhook)

	return webhook, err
}

func (c *Client) ListWebhooks(ctx context.Context, org string) ([]types.Webhook, error) {
	var webhooks []types.Webhook
	err := c.do(ctx, http.MethodGet, "/webhooks/"+scope(org), nil, &webhooks)

	return webhooks, err
}

func (c *Client) SearchPackages(ctx context.Context, query string, exclude []string) ([]types.Package, error) {
	params := url.Values{}
	params.Set("ts_query_web", query)
	params.Set("limit", strconv.Itoa(searchLimit+len(exclude)))

	var response SearchResponse
	if err := c.do(ctx, http.MethodGet, "/packages/search?"+params.Encode(), nil, &response); err != nil {
		return nil, err
	}

	packages := slices.DeleteFunc(response.Packages, func(p types.Package) bool {
		return slices.Contains(exclude, p.PackageID)
	})
	if len(packages) > searchLimit {
		packages = packages[:searchLimit]
	}

	return packages, nil
}

func scope(org string) string {
	if org == "" {
		return "user"
	}

	return "org/" + url.PathEscape(org)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	log.Debugf("%s %s", method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func responseError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return &myErrors.HTTPError{
			StatusCode: resp.StatusCode,
			StatusText: myErrors.ErrLoginRedirect.Error(),
			Err:        myErrors.ErrLoginRedirect,
		}
	}

	statusText := http.StatusText(resp.StatusCode)

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		statusText = body.Message
	}

	log.Debugf("request failed with status %d: %s", resp.StatusCode, statusText)

	return &myErrors.HTTPError{StatusCode: resp.StatusCode, StatusText: statusText}
}
