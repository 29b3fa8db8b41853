// Package client talks to the todo REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adanyl0v/go-todo-app/internal/models"
)

// ErrNotLoggedIn is returned by calls that need a token when none is set.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New returns a client for the API mounted at baseURL, for example
// http://localhost:5000/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.token = token
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Signup registers a new account. It doesn't log in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", false, req, nil)
}

type LoginResult struct {
	Token string
	User  models.UserSummary
}

// Login authenticates and remembers the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var env envelope
	if err := c.call(ctx, http.MethodPost, "/auth/login", false, body, &env); err != nil {
		return nil, err
	}

	var user models.UserSummary
	if err := decodeData(env.Data, &user); err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, errors.New("server returned no token")
	}

	c.token = env.Token
	return &LoginResult{Token: env.Token, User: user}, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user/get", true, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate holds the fields to overwrite. Nil fields are kept.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/user/update", true, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListTodos(ctx context.Context) ([]models.Task, error) {
	todos := make([]models.Task, 0)
	if err := c.do(ctx, http.MethodGet, "/todo/get", true, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, title, description string) (*models.Task, error) {
	body := map[string]string{
		"title":       title,
		"description": description,
	}

	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/todo/create", true, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TodoUpdate holds the fields to overwrite. Nil fields are kept.
type TodoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

func (c *Client) UpdateTodo(ctx context.Context, id string, update TodoUpdate) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/todo/update/"+id, true, update, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) SetCompleted(ctx context.Context, id string, isCompleted bool) (*models.Task, error) {
	body := map[string]bool{"isCompleted": isCompleted}

	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/todo/isCompleted/"+id, true, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todo/delete/"+id, true, nil, nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do calls the API and decodes the data of the envelope into out, if set.
func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var env envelope
	if err := c.call(ctx, method, path, auth, body, &env); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeData(env.Data, out)
}

func (c *Client) call(ctx context.Context, method, path string, auth bool, body any, env *envelope) error {
	if auth && c.token == "" {
		return ErrNotLoggedIn
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	decodeErr := json.Unmarshal(raw, env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	return nil
}

func decodeData(data json.RawMessage, out any) error {
	if len(data) == 0 || string(data) == "null" {
		return errors.New("server returned no data")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
