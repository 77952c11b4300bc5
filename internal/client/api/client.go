// Package api is an HTTP client for the vault server's /api/v1 routes.
package api

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

	"github.com/dmitrijs2005/secretsvault/internal/client/models"
	"github.com/dmitrijs2005/secretsvault/internal/common"
)

// Error is a failed response decoded from the server envelope.
type Error struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"requestId"`
	} `json:"meta"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a client for the server at baseURL, e.g.
// "http://127.0.0.1:8080". token may be empty for share link redemption.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// SetToken replaces the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
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
	if auth {
		if c.token == "" {
			return common.ErrorUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}

	if !env.Success {
		apiErr := &Error{Status: resp.StatusCode, RequestID: env.Meta.RequestID}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func filePath(id string) string {
	return "/files/" + url.PathEscape(id)
}

func (c *Client) ListFiles(ctx context.Context) ([]models.File, error) {
	var data struct {
		Files []models.File `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, "/files", nil, true, &data); err != nil {
		return nil, err
	}
	return data.Files, nil
}

// AddFile stores a new secret and returns its id.
func (c *Client) AddFile(ctx context.Context, name, content string) (string, error) {
	var data struct {
		ID string `json:"id"`
	}
	body := map[string]string{"name": name, "content": content}
	if err := c.do(ctx, http.MethodPost, "/files", body, true, &data); err != nil {
		return "", err
	}
	return data.ID, nil
}

func (c *Client) GetFile(ctx context.Context, id string) (*models.File, error) {
	var data struct {
		File models.File `json:"file"`
	}
	if err := c.do(ctx, http.MethodGet, filePath(id), nil, true, &data); err != nil {
		return nil, err
	}
	return &data.File, nil
}

// DeleteFile removes a file and returns the name it had.
func (c *Client) DeleteFile(ctx context.Context, id string) (string, error) {
	var data struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodDelete, filePath(id), nil, true, &data); err != nil {
		return "", err
	}
	return data.Name, nil
}

func (c *Client) ShareFile(ctx context.Context, id string) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := c.do(ctx, http.MethodPost, filePath(id)+"/share", nil, true, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// OpenShared redeems a share link. No token is sent.
func (c *Client) OpenShared(ctx context.Context, id, code string) (*models.File, error) {
	var data struct {
		File models.File `json:"file"`
	}
	path := filePath(id) + "/share?code=" + url.QueryEscape(code)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &data); err != nil {
		return nil, err
	}
	return &data.File, nil
}

// Ping checks server readiness.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health/ready", nil, false, nil)
}
