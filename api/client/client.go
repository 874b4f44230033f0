package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/applkanji/website/api/models"
	"github.com/applkanji/website/contact"
)

const defaultTimeout = 30 * time.Second

// ErrRejected is returned by SubmitContact when the server refused the
// submission as invalid. The response carries the field errors.
var ErrRejected = errors.New("submission rejected")

type SiteClient struct {
	baseURL string
	client  *http.Client
}

func NewSiteClient(baseURL string) *SiteClient {
	return &SiteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Health fetches the server health summary
func (sc *SiteClient) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse
	body, status, err := sc.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return health, err
	}
	if status != http.StatusOK {
		return health, statusError(status, body)
	}
	if err := json.Unmarshal(body, &health); err != nil {
		return health, fmt.Errorf("failed to parse response: %w", err)
	}
	return health, nil
}

// SlideshowState fetches the state every new hero slideshow starts in
func (sc *SiteClient) SlideshowState(ctx context.Context) (models.SlideshowState, error) {
	var state models.SlideshowState
	body, status, err := sc.do(ctx, http.MethodGet, "/slideshow/state", nil)
	if err != nil {
		return state, err
	}
	if status != http.StatusOK {
		return state, statusError(status, body)
	}
	if err := json.Unmarshal(body, &state); err != nil {
		return state, fmt.Errorf("failed to parse response: %w", err)
	}
	return state, nil
}

// SubmitContact posts the contact form as JSON. A rejected submission
// returns the decoded response together with ErrRejected.
func (sc *SiteClient) SubmitContact(ctx context.Context, sub contact.Submission) (models.ContactResponse, error) {
	var resp models.ContactResponse

	jsonData, err := json.Marshal(sub)
	if err != nil {
		return resp, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, status, err := sc.do(ctx, http.MethodPost, "/contact", jsonData)
	if err != nil {
		return resp, err
	}

	switch status {
	case http.StatusOK, http.StatusUnprocessableEntity:
		if err := json.Unmarshal(body, &resp); err != nil {
			return resp, fmt.Errorf("failed to parse response: %w", err)
		}
		if status == http.StatusUnprocessableEntity {
			return resp, ErrRejected
		}
		slog.Debug("contact form submitted", "email", sub.Email)
		return resp, nil
	default:
		return resp, statusError(status, body)
	}
}

func (sc *SiteClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, sc.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := sc.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("server error: %s", errResp.Error)
	}
	return fmt.Errorf("server returned status %d: %s", status, string(body))
}
