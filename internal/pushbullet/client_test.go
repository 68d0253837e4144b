package pushbullet_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/pushbullet"
)

const testKey = "o.test-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *pushbullet.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return pushbullet.NewClient(testKey, pushbullet.ClientOptions{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Retry: pushbullet.RetryPolicy{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Devices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testKey, r.Header.Get("Access-Token"))
		assert.Equal(t, "/devices", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))

		if r.URL.Query().Get("cursor") == "" {
			writeJSON(t, w, map[string]any{
				"devices": []map[string]any{{"iden": "d1", "nickname": "Phone", "active": true}},
				"cursor":  "next",
			})
			return
		}
		writeJSON(t, w, map[string]any{
			"devices": []map[string]any{{"iden": "d2", "nickname": "Bandit", "active": true}},
		})
	})

	devices, err := client.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "Phone", devices[0].Nickname)
	assert.Equal(t, "d2", devices[1].Iden)

	device, err := client.FindDevice(context.Background(), "Bandit")
	require.NoError(t, err)
	assert.Equal(t, "d2", device.Iden)

	_, err = client.FindDevice(context.Background(), "Laptop")
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

func TestClient_CreateDevice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/devices", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Bandit", body["nickname"])
		assert.Equal(t, "system", body["icon"])
		assert.Equal(t, "Go", body["manufacturer"])

		writeJSON(t, w, map[string]any{"iden": "new", "nickname": "Bandit", "active": true})
	})

	device, err := client.CreateDevice(context.Background(), "Bandit", pushbullet.DeviceUpdate{Manufacturer: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "new", device.Iden)
}

func TestClient_EditDevice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/d1", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "go1.24", body["model"])
		_, hasNickname := body["nickname"]
		assert.False(t, hasNickname)

		writeJSON(t, w, map[string]any{"iden": "d1", "model": "go1.24"})
	})

	device, err := client.EditDevice(context.Background(), "d1", pushbullet.DeviceUpdate{Model: "go1.24"})
	require.NoError(t, err)
	assert.Equal(t, "go1.24", device.Model)
}

func TestClient_Pushes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pushes", r.URL.Path)
		assert.Equal(t, "1700000000.5", r.URL.Query().Get("modified_after"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		writeJSON(t, w, map[string]any{
			"pushes": []map[string]any{{
				"iden": "p1", "type": "link", "url": "https://github.com/acme/widget",
				"modified": 1700000001.25, "active": true,
			}},
		})
	})

	pushes, err := client.Pushes(context.Background(), 1700000000.5, 5)
	require.NoError(t, err)
	require.Len(t, pushes, 1)
	assert.Equal(t, pushbullet.PushTypeLink, pushes[0].Type)
	assert.Equal(t, int64(1700000001), pushes[0].ModifiedAt().Unix())
}

func TestClient_PushNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "note", body["type"])
		assert.Equal(t, "Bandit Report Summary", body["title"])
		assert.Equal(t, "phone", body["device_iden"])
		assert.NotEmpty(t, body["guid"])

		writeJSON(t, w, map[string]any{"iden": "p2", "type": "note", "guid": body["guid"]})
	})

	push, err := client.PushNote(context.Background(), "Bandit Report Summary", "high:0 medium:0 low:0", "phone")
	require.NoError(t, err)
	assert.Equal(t, "p2", push.Iden)
	assert.NotEmpty(t, push.GUID)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, map[string]any{"pushes": []any{}})
	})

	_, err := client.Pushes(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_PermanentAPIError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(t, w, map[string]any{"error": map[string]string{
			"type": "invalid_request", "message": "Access token is missing or invalid.",
		}})
	})

	_, err := client.Devices(context.Background())
	require.Error(t, err)

	var apiErr *pushbullet.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid_request", apiErr.Type)
	assert.Contains(t, err.Error(), "Access token")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, pushbullet.RetryableStatus(http.StatusTooManyRequests))
	assert.True(t, pushbullet.RetryableStatus(http.StatusBadGateway))
	assert.True(t, pushbullet.RetryableStatus(522))
	assert.False(t, pushbullet.RetryableStatus(http.StatusBadRequest))
	assert.False(t, pushbullet.RetryableStatus(http.StatusOK))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, pushbullet.IsRetryable(&pushbullet.APIError{StatusCode: 503}))
	assert.False(t, pushbullet.IsRetryable(&pushbullet.APIError{StatusCode: 403}))
	assert.False(t, pushbullet.IsRetryable(context.Canceled))
	assert.False(t, pushbullet.IsRetryable(nil))
}
