package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/a-la-firme/librarysystem/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is a typed REST client for the library API.
// Zero value is not usable; use New to create instances.
type Client struct {
	baseURL string
	// client is reused across requests for connection pooling
	client *http.Client
	log    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, allowing custom
// transports, proxies, or testing.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithLogger sets the logger for the Client.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a library API client rooted at baseURL (e.g. "/api" or
// "http://localhost:5000/api"). The trailing slash is stripped so endpoint
// paths can be joined uniformly.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListUsers fetches all users with their embedded current-loan summaries.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListBooks fetches the full catalog, available or not.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ListAvailableBooks fetches only books currently available for loan.
func (c *Client) ListAvailableBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books/available", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateUser registers a new user. Server-side validation failures come back
// as *Error with per-field messages.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/users", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateBook adds a book to the catalog.
func (c *Client) CreateBook(ctx context.Context, params CreateBookParams) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPost, "/books", params, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateLoan lends a book to a user. The server rejects users that already
// hold a book and books that are not available; both arrive as *Error.
func (c *Client) CreateLoan(ctx context.Context, userID, bookID int64) (*Loan, error) {
	var loan Loan
	params := createLoanParams{UserID: userID, BookID: bookID}
	if err := c.do(ctx, http.MethodPost, "/loans", params, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// ReturnLoan marks a loan as returned and frees its book.
func (c *Client) ReturnLoan(ctx context.Context, loanID int64) (*Loan, error) {
	var loan Loan
	path := fmt.Sprintf("/loans/%d/return", loanID)
	if err := c.do(ctx, http.MethodPut, path, nil, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// errorBody is the wire shape of non-2xx responses: either a general message
// or a field-level error map, never both.
type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// do executes one request and decodes the response into out.
// Transport and decode failures wrap ErrConnection; non-2xx statuses are
// translated into *Error with whatever structure the body carried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint := c.baseURL + path
	if _, err := url.Parse(endpoint); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 1MB cap: list responses are library-scale, anything bigger is broken
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	c.log.LogAttrs(ctx, slog.LevelDebug, "library API call",
		logger.Endpoint(path),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		// Decode best effort: an unparseable error body still yields a
		// status-only *Error the caller can show a fallback message for.
		var eb errorBody
		if unmarshalErr := json.Unmarshal(respBody, &eb); unmarshalErr == nil {
			apiErr.Message = eb.Error
			apiErr.Fields = eb.Errors
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	return nil
}
