// Package client is a Go client for the CodeKeep API. It owns the bearer
// token for a session and reports authentication failures through an
// explicit callback instead of a hidden global side effect, so the caller
// decides how to end the session.
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

	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/NoteLegend/CodeKeep/pkg/dto"
	"github.com/google/uuid"
)

const defaultBaseURL = "http://localhost:8080/api"

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string

	// OnAuthFailure is invoked when an authenticated call answers 401.
	// The client clears its token before calling it.
	OnAuthFailure func()
}

// APIError is any non-2xx response, decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []dto.FieldError
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope covers every response shape the API produces; only the fields
// relevant to each call are populated.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Errors  []dto.FieldError `json:"errors"`
	Count   int              `json:"count"`
	Data    json.RawMessage  `json:"data"`
	Token   string           `json:"token"`
	User    *models.User     `json:"user"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &env, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.SetToken("")
		if c.OnAuthFailure != nil {
			c.OnAuthFailure()
		}
	}

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    env.Message,
		Errors:     env.Errors,
	}
}

func decodeData[T any](env *envelope) (T, error) {
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("failed to decode response data: %w", err)
	}
	return out, nil
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Name: name, Email: email, Password: password,
	})
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return env.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: email, Password: password,
	})
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return env.User, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// --- Collections ---

func (c *Client) ListCollections(ctx context.Context) ([]models.Collection, error) {
	env, err := c.do(ctx, http.MethodGet, "/collections", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Collection](env)
}

func (c *Client) GetCollection(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	env, err := c.do(ctx, http.MethodGet, "/collections/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Collection](env)
}

func (c *Client) CreateCollection(ctx context.Context, name string) (*models.Collection, error) {
	env, err := c.do(ctx, http.MethodPost, "/collections", dto.CreateCollectionRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Collection](env)
}

func (c *Client) UpdateCollection(ctx context.Context, id uuid.UUID, name string) (*models.Collection, error) {
	env, err := c.do(ctx, http.MethodPut, "/collections/"+id.String(), dto.UpdateCollectionRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Collection](env)
}

func (c *Client) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/collections/"+id.String(), nil)
	return err
}

// --- Snippets ---

// SnippetListOptions mirror the server's query filters; they compose with
// logical AND.
type SnippetListOptions struct {
	Collection    *uuid.UUID
	FavoritesOnly bool
	Tag           string
}

func (c *Client) ListSnippets(ctx context.Context, opts SnippetListOptions) ([]models.Snippet, error) {
	params := url.Values{}
	if opts.Collection != nil {
		params.Set("collection", opts.Collection.String())
	}
	if opts.FavoritesOnly {
		params.Set("isFavorite", "true")
	}
	if opts.Tag != "" {
		params.Set("tag", opts.Tag)
	}

	path := "/snippets"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Snippet](env)
}

func (c *Client) GetSnippet(ctx context.Context, id uuid.UUID) (*models.Snippet, error) {
	env, err := c.do(ctx, http.MethodGet, "/snippets/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Snippet](env)
}

func (c *Client) CreateSnippet(ctx context.Context, req dto.CreateSnippetRequest) (*models.Snippet, error) {
	env, err := c.do(ctx, http.MethodPost, "/snippets", req)
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Snippet](env)
}

func (c *Client) UpdateSnippet(ctx context.Context, id uuid.UUID, req dto.UpdateSnippetRequest) (*models.Snippet, error) {
	env, err := c.do(ctx, http.MethodPut, "/snippets/"+id.String(), req)
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Snippet](env)
}

func (c *Client) DeleteSnippet(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, http.MethodDelete, "/snippets/"+id.String(), nil)
	return err
}

func (c *Client) ToggleFavorite(ctx context.Context, id uuid.UUID) (*models.Snippet, error) {
	env, err := c.do(ctx, http.MethodPatch, "/snippets/"+id.String()+"/favorite", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Snippet](env)
}
