package client

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

	"github.com/legalchicks/lcen-portal/internal/client/models"
)

// API paths relative to the base URL.
const (
	pathLogin         = "/api/auth/login"
	pathRegister      = "/api/auth/register"
	pathVerify        = "/api/auth/verify"
	pathMembers       = "/api/users/members"
	pathProfile       = "/api/users/profile/"
	pathInvoices      = "/api/business/invoices"
	pathExpenses      = "/api/business/expenses"
	pathProfitability = "/api/business/profitability"
	pathAnalytics     = "/api/analytics"
	pathHealth        = "/healthz"
)

const maxResponseBytes = 1 << 20

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// NewHTTPClient builds a client for baseURL (e.g. "http://localhost:3001").
// timeout bounds every request; tokens may be nil.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if tokens == nil {
		tokens = func(context.Context) string { return "" }
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   tokens,
	}, nil
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends body as JSON and decodes a 2xx response into out. bearer, when
// set, overrides the token source.
func (c *HTTPClient) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer == "" {
		bearer = c.token(ctx)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, pathLogin, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, pathRegister, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify checks token with the server and returns its canonical user.
func (c *HTTPClient) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "No token provided"}
	}
	var out models.VerifyResponse
	if err := c.do(ctx, http.MethodPost, pathVerify, token, struct{}{}, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, errors.New("verify: malformed response")
	}
	return out.User, nil
}

func (c *HTTPClient) Members(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, pathMembers, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Profile(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, pathProfile+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	var out models.VerifyResponse
	if err := c.do(ctx, http.MethodPut, pathProfile+url.PathEscape(id), "", upd, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("update profile: malformed response")
	}
	return out.User, nil
}

func (c *HTTPClient) Invoices(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := c.do(ctx, http.MethodGet, pathInvoices, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Expenses(ctx context.Context) ([]models.Expense, error) {
	var out []models.Expense
	if err := c.do(ctx, http.MethodGet, pathExpenses, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddExpense(ctx context.Context, e models.NewExpense) (*models.Expense, error) {
	var out models.Expense
	if err := c.do(ctx, http.MethodPost, pathExpenses, "", e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Profitability(ctx context.Context) (*models.Profitability, error) {
	var out models.Profitability
	if err := c.do(ctx, http.MethodGet, pathProfitability, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Analytics(ctx context.Context) (*models.Analytics, error) {
	var out models.Analytics
	if err := c.do(ctx, http.MethodGet, pathAnalytics, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathHealth, "", nil, nil)
}
