// Package apiclient is the HTTP client the console and the public site use
// to reach the JSON API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xiuxian-wiki/encyclopedia/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response. Message is the server's error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CategorySummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	ChineseName string `json:"chineseName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Count       int64  `json:"count"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient returns a copy of c that sends requests through hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	return &Client{baseURL: c.baseURL, http: hc}
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Categories(ctx context.Context) ([]CategorySummary, error) {
	var res []CategorySummary
	if err := c.do(ctx, http.MethodGet, "/api/categories", "", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// List fetches every record of the category, newest first.
func (c *Client) List(ctx context.Context, cat models.Category) ([]models.Record, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, recordsPath(cat), "", nil, &raw); err != nil {
		return nil, err
	}
	records := make([]models.Record, len(raw))
	for i, item := range raw {
		rec := cat.New()
		if err := json.Unmarshal(item, rec); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", cat, err)
		}
		records[i] = rec
	}
	return records, nil
}

func (c *Client) Get(ctx context.Context, cat models.Category, id string) (models.Record, error) {
	rec := cat.New()
	if err := c.do(ctx, http.MethodGet, recordsPath(cat)+"/"+url.PathEscape(id), "", nil, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create posts payload as is; the server validates it.
func (c *Client) Create(ctx context.Context, token string, cat models.Category, payload any) (models.Record, error) {
	rec := cat.New()
	if err := c.do(ctx, http.MethodPost, recordsPath(cat), token, payload, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Client) Update(ctx context.Context, token string, cat models.Category, id string, payload any) (models.Record, error) {
	rec := cat.New()
	if err := c.do(ctx, http.MethodPut, recordsPath(cat)+"/"+url.PathEscape(id), token, payload, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Client) Delete(ctx context.Context, token string, cat models.Category, id string) error {
	return c.do(ctx, http.MethodDelete, recordsPath(cat)+"/"+url.PathEscape(id), token, nil, nil)
}

// Health returns nil when GET /api/health answers 200.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", "", nil, nil)
}

func recordsPath(cat models.Category) string {
	return "/api/" + string(cat)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
		if body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
