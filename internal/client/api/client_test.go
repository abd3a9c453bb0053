package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/startline/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL, "token")

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.Equal(t, "token", client.accessToken)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestParseServerTime(t *testing.T) {
	precise := time.Date(2024, 1, 15, 10, 30, 45, 123_000_000, time.UTC)

	tests := []struct {
		name     string
		headers  map[string]string
		expected time.Time
		wantErr  bool
	}{
		{
			name: "millisecond header preferred",
			headers: map[string]string{
				api.HeaderServerTime: strconv.FormatInt(precise.UnixMilli(), 10),
				"Date":               "Mon, 15 Jan 2024 10:30:40 GMT",
			},
			expected: precise,
		},
		{
			name:     "date fallback",
			headers:  map[string]string{"Date": "Mon, 15 Jan 2024 10:30:45 GMT"},
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name: "malformed millisecond header falls back to date",
			headers: map[string]string{
				api.HeaderServerTime: "soon",
				"Date":               "Mon, 15 Jan 2024 10:30:45 GMT",
			},
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{name: "invalid date", headers: map[string]string{"Date": "yesterday"}, wantErr: true},
		{name: "no headers", headers: map[string]string{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}

			got, err := ParseServerTime(h)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

// TestClient_ServerTime проверяет получение времени сервера через HEAD запрос
func TestClient_ServerTime(t *testing.T) {
	serverTime := time.Date(2024, 1, 15, 10, 30, 45, 500_000_000, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.Header().Set(api.HeaderServerTime, strconv.FormatInt(serverTime.UnixMilli(), 10))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	got, err := client.ServerTime(context.Background())
	require.NoError(t, err)
	assert.True(t, serverTime.Equal(got))
}

func TestClient_ServerTime_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "")
	_, err := client.ServerTime(context.Background())
	assert.Error(t, err)
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", ServerTime: 42})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, "").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(42), resp.ServerTime)
}

// TestClient_FindStartByTarget проверяет поиск записи по дистанции
func TestClient_FindStartByTarget(t *testing.T) {
	startTime := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/starts", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("target_id") {
		case "d1":
			_ = json.NewEncoder(w).Encode(api.StartRecord{
				ID: "rec-1", TargetID: "d1", EventGroupID: "race-1", Name: "10K", StartTime: startTime,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "start not found"})
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")

	record, err := client.FindStartByTarget(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, "10K", record.Name)
	assert.True(t, startTime.Equal(record.StartTime))

	_, err = client.FindStartByTarget(context.Background(), "d2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "start not found")
}

// TestClient_CreateStart проверяет создание записи старта
func TestClient_CreateStart(t *testing.T) {
	startTime := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/starts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.CreateStartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "d1", req.TargetID)
		assert.Equal(t, "Start d1", req.Name)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.StartRecord{
			ID: "rec-1", TargetID: req.TargetID, EventGroupID: req.EventGroupID,
			Name: req.Name, StartTime: req.StartTime,
		})
	}))
	defer server.Close()

	record, err := NewClient(server.URL, "t").CreateStart(context.Background(), api.CreateStartRequest{
		TargetID: "d1", EventGroupID: "race-1", Name: "Start d1", StartTime: startTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, "race-1", record.EventGroupID)
	assert.True(t, startTime.Equal(record.StartTime))
}

// TestClient_UpdateStartTime проверяет изменение времени старта
func TestClient_UpdateStartTime(t *testing.T) {
	startTime := time.Date(2024, 1, 15, 9, 0, 2, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		if r.URL.Path != "/api/v1/starts/rec-1" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "start not found"})
			return
		}

		var req api.UpdateStartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(api.StartRecord{ID: "rec-1", TargetID: "d1", StartTime: req.StartTime})
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")

	record, err := client.UpdateStartTime(context.Background(), "rec-1", startTime)
	require.NoError(t, err)
	assert.True(t, startTime.Equal(record.StartTime))

	_, err = client.UpdateStartTime(context.Background(), "rec-2", startTime)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestClient_ErrorResponses проверяет разбор ошибок сервера
func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		status      int
		sentinel    error
		errContains string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"invalid token"}`, sentinel: ErrUnauthorized, errContains: "invalid token"},
		{name: "server error with details", status: http.StatusInternalServerError, body: `{"error":"database locked","details":"busy"}`, errContains: "database locked"},
		{name: "plain text body", status: http.StatusBadGateway, body: "bad gateway", errContains: "bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, "t").FindStartByTarget(context.Background(), "d1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)

			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			} else {
				assert.NotErrorIs(t, err, ErrNotFound)
			}
		})
	}
}
