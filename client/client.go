package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/sendlog"
	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/usecase"
)

const (
	defaultTimeout = 5 * time.Second
	userAgent      = "sendlog-client"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sendlog: %d %s", e.Status, e.Message)
}

type Client struct {
	client  *http.Client
	cache   *cache.Cache
	baseURL string

	mu       sync.RWMutex
	username string
}

// New returns a client for the API rooted at baseURL, e.g. https://climb.example.com.
// Endpoint paths are discovered from /.well-known/sendlog.
func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:  &httpClient,
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	if username := c.Username(); username != "" {
		req.Header.Set(domain.RequesterUsernameHeader, username)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// SetUsername sets the identity sent on every request. Login calls it on success.
func (c *Client) SetUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
}

func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

func (c *Client) WellKnown(ctx context.Context) (sendlog.WellKnown, error) {
	const cacheKey = "wellknown"
	if x, found := c.cache.Get(cacheKey); found {
		return x.(sendlog.WellKnown), nil
	}

	var wk sendlog.WellKnown
	if err := c.request(ctx, http.MethodGet, c.baseURL+"/.well-known/sendlog", nil, &wk); err != nil {
		return sendlog.WellKnown{}, fmt.Errorf("failed to get well-known: %w", err)
	}

	c.cache.Set(cacheKey, wk, cache.DefaultExpiration)
	return wk, nil
}

func (c *Client) endpoint(ctx context.Context, name string, query url.Values) (string, error) {
	wk, err := c.WellKnown(ctx)
	if err != nil {
		return "", err
	}
	ep, ok := wk.Endpoints[name]
	if !ok {
		return "", fmt.Errorf("endpoint %s not advertised", name)
	}

	target := c.baseURL + ep.Template
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target, nil
}

func (c *Client) request(ctx context.Context, method, target string, body, response any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e sendlog.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, name string, query url.Values, body, response any) error {
	target, err := c.endpoint(ctx, name, query)
	if err != nil {
		return err
	}
	return c.request(ctx, method, target, body, response)
}

func filterQuery(filter domain.RouteFilter) url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"company":  filter.CompanyName,
		"suburb":   filter.Suburb,
		"location": filter.Location,
		"type":     filter.ClimbType,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}

func (c *Client) Login(ctx context.Context, username, password string) (domain.Profile, error) {
	var resp sendlog.LoginResponse
	err := c.call(ctx, http.MethodPost, "login", nil, sendlog.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return domain.Profile{}, err
	}
	c.SetUsername(resp.User.Username)
	return resp.User, nil
}

func (c *Client) Register(ctx context.Context, input usecase.RegisterInput) error {
	return c.call(ctx, http.MethodPost, "register", nil, input, nil)
}

func (c *Client) RecordAttempt(ctx context.Context, input usecase.RecordAttemptInput) (int, error) {
	var resp sendlog.AttemptAddedResponse
	if err := c.call(ctx, http.MethodPost, "attempts", nil, input, &resp); err != nil {
		return 0, err
	}
	return resp.AttemptNo, nil
}

func (c *Client) Attempts(ctx context.Context, filter domain.RouteFilter) ([]domain.AttemptView, error) {
	var resp sendlog.AttemptsResponse
	err := c.call(ctx, http.MethodGet, "attempts", filterQuery(filter), nil, &resp)
	return resp.Attempts, err
}

func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	var resp sendlog.ProjectsResponse
	err := c.call(ctx, http.MethodGet, "attempts", url.Values{"dashboard": {"projects"}}, nil, &resp)
	return resp.Projects, err
}

func (c *Client) SortedHistory(ctx context.Context) ([]domain.AttemptView, error) {
	var resp sendlog.AttemptsResponse
	err := c.call(ctx, http.MethodGet, "attempts", url.Values{"dashboard": {"all_attempts_sorted"}}, nil, &resp)
	return resp.Attempts, err
}

func (c *Client) Routes(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	var resp sendlog.RoutesResponse
	err := c.call(ctx, http.MethodGet, "routes", filterQuery(filter), nil, &resp)
	return resp.Routes, err
}

func (c *Client) AddRoutes(ctx context.Context, routes []usecase.RouteInput) ([]int64, error) {
	raw, err := json.Marshal(routes)
	if err != nil {
		return nil, err
	}
	var resp sendlog.RoutesAddedResponse
	err = c.call(ctx, http.MethodPost, "routes", nil, sendlog.RouteRequest{Action: "add", Routes: raw}, &resp)
	return resp.RIDs, err
}

func (c *Client) ArchiveRoute(ctx context.Context, rid int64) error {
	return c.call(ctx, http.MethodPost, "routes", nil, sendlog.RouteRequest{Action: "archive", RID: rid}, nil)
}

func lookup[T any](ctx context.Context, c *Client, entity string, query url.Values) (T, error) {
	var resp sendlog.ResultsResponse[T]
	if query == nil {
		query = url.Values{}
	}
	query.Set("entity", entity)
	err := c.call(ctx, http.MethodGet, "misc_additions", query, nil, &resp)
	return resp.Results, err
}

// Modes is served from the client cache for ten minutes, like Results.
func (c *Client) Modes(ctx context.Context) ([]domain.Mode, error) {
	if x, found := c.cache.Get("modes"); found {
		return x.([]domain.Mode), nil
	}
	modes, err := lookup[[]domain.Mode](ctx, c, "mode", nil)
	if err != nil {
		return nil, err
	}
	c.cache.Set("modes", modes, cache.DefaultExpiration)
	return modes, nil
}

func (c *Client) Results(ctx context.Context) ([]domain.Result, error) {
	if x, found := c.cache.Get("results"); found {
		return x.([]domain.Result), nil
	}
	results, err := lookup[[]domain.Result](ctx, c, "result", nil)
	if err != nil {
		return nil, err
	}
	c.cache.Set("results", results, cache.DefaultExpiration)
	return results, nil
}

func (c *Client) Grades(ctx context.Context, company, suburb, climbType string) ([]domain.Grade, error) {
	return lookup[[]domain.Grade](ctx, c, "grades", url.Values{
		"company":   {company},
		"suburb":    {suburb},
		"climbType": {climbType},
	})
}
