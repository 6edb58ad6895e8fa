// Package users is the HTTP client for the ms-user directory service.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kananfatullayev/ms-loan/internal/core/domain"
)

// DefaultTimeout bounds the outbound lookup so a stalled directory cannot
// block request handling indefinitely.
const DefaultTimeout = 10 * time.Second

// Client calls the user directory over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// errorBody is the directory's uniform error envelope
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewClient creates a new user directory client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetByID fetches a user profile by ID.
//
// Directory failures are decoded into domain errors: 404 unwraps to
// domain.ErrUserNotFound, 403 to domain.ErrUserValidation, and any other
// non-2xx status is a generic *domain.DirectoryError. The machine-readable
// code from the directory's error body is preserved on the returned error.
func (c *Client) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	url := fmt.Sprintf("%s/v1/users/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user directory request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("user directory response read failed: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp.StatusCode, body)
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("user directory response decode failed: %w", err)
	}

	return &user, nil
}

// decodeError maps a directory status code and error body to a domain error
func decodeError(status int, body []byte) error {
	var eb errorBody
	// A malformed error body still maps by status; only the code defaults.
	_ = json.Unmarshal(body, &eb)

	switch status {
	case http.StatusNotFound:
		return &domain.DirectoryError{
			Code:    codeOrDefault(eb.Code, domain.CodeUserNotFound),
			Message: eb.Message,
			Kind:    domain.ErrUserNotFound,
		}
	case http.StatusForbidden:
		return &domain.DirectoryError{
			Code:    codeOrDefault(eb.Code, domain.CodeValidation),
			Message: eb.Message,
			Kind:    domain.ErrUserValidation,
		}
	default:
		return &domain.DirectoryError{
			Code:    codeOrDefault(eb.Code, domain.CodeClientFailure),
			Message: fmt.Sprintf("user directory returned status %d", status),
			Kind:    domain.ErrInternalServer,
		}
	}
}

func codeOrDefault(code, fallback string) string {
	if code != "" {
		return code
	}
	return fallback
}
