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
	"strconv"
	"time"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/pkg/api"
)

// Ошибки, которые клиент различает по статусу ответа
var (
	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned for 401 responses
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoServerTime is returned when a response carries no usable time header
	ErrNoServerTime = errors.New("response has no server time header")
)

// StatusError описывает неуспешный ответ сервера
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes to sentinel errors
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return nil
	}
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient создает новый API клиент
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// ServerTime issues a HEAD request and returns the server time observed in
// the response. X-Server-Time-Ms is preferred; Date is the fallback.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	req, err := c.newRequest(ctx, http.MethodHead, "/api/v1/health", nil)
	if err != nil {
		return time.Time{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("time probe failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return ParseServerTime(resp.Header)
}

// ParseServerTime extracts the server time from response headers
func ParseServerTime(h http.Header) (time.Time, error) {
	if raw := h.Get(api.HeaderServerTime); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
	}

	if raw := h.Get("Date"); raw != "" {
		t, err := http.ParseTime(raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid Date header %q: %w", raw, err)
		}
		return t.UTC(), nil
	}

	return time.Time{}, ErrNoServerTime
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// FindStartByTarget ищет запись старта по дистанции.
// Returns ErrNotFound (wrapped) when the target has no record yet.
func (c *Client) FindStartByTarget(ctx context.Context, targetID string) (*models.StartRecord, error) {
	var resp api.StartRecord
	path := "/api/v1/starts?target_id=" + url.QueryEscape(targetID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("find start request failed: %w", err)
	}
	return toModel(resp), nil
}

// CreateStart создает запись старта
func (c *Client) CreateStart(ctx context.Context, req api.CreateStartRequest) (*models.StartRecord, error) {
	var resp api.StartRecord
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/starts", req, &resp); err != nil {
		return nil, fmt.Errorf("create start request failed: %w", err)
	}
	return toModel(resp), nil
}

// UpdateStartTime изменяет время существующей записи старта
func (c *Client) UpdateStartTime(ctx context.Context, id string, startTime time.Time) (*models.StartRecord, error) {
	var resp api.StartRecord
	path := "/api/v1/starts/" + url.PathEscape(id)
	req := api.UpdateStartRequest{StartTime: startTime}
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, fmt.Errorf("update start request failed: %w", err)
	}
	return toModel(resp), nil
}

func toModel(r api.StartRecord) *models.StartRecord {
	return &models.StartRecord{
		ID:           r.ID,
		TargetID:     r.TargetID,
		EventGroupID: r.EventGroupID,
		Name:         r.Name,
		StartTime:    r.StartTime,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	return req, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := c.newRequest(ctx, method, path, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(respBody))}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
