package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, origins ...string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := New(&Config{
		Listen:      "127.0.0.1:0",
		CORSOrigins: origins,
		Instance:    "test-desk",
	})
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be valid JSON")
	return response
}

func TestNewRequiresListen(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	response := decode(t, w)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Order desk is running", response["message"])
	assert.Equal(t, float64(0), response["sessions"])
}

func TestIndexServesForm(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="order"`)
	assert.Contains(t, w.Body.String(), "/ws")
}

func TestListCatalog(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/v1/catalog", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	data, ok := response["data"].([]interface{})
	require.True(t, ok, "data should be a list")
	require.Len(t, data, 3)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "Apple", first["brand"])
	assert.Len(t, first["models"], 8)
}

func TestListModels(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantKnown bool
		wantCount int
	}{
		{"known brand", "/api/v1/catalog/Samsung", true, 6},
		{"brand with space", "/api/v1/catalog/Google%20Pixel", true, 5},
		{"unknown brand", "/api/v1/catalog/Nokia", false, 0},
	}

	srv := newTestServer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(srv, http.MethodGet, tt.path, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			data := decode(t, w)["data"].(map[string]interface{})
			assert.Equal(t, tt.wantKnown, data["known"])
			models, ok := data["models"].([]interface{})
			require.True(t, ok, "models should be a list, never null")
			assert.Len(t, models, tt.wantCount)
		})
	}
}

func TestPreviewOrder(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"name":        "Ali Khan",
		"mobile":      "03001234567",
		"brand":       "Google Pixel",
		"model":       "Pixel 8",
		"accessories": "Case",
	})
	w := doRequest(srv, http.MethodPost, "/api/v1/orders/preview", body)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t,
		"*New Order Request*\n\n*Name:* Ali Khan\n*Mobile:* 03001234567\n*Brand:* Google Pixel\n*Model:* Pixel 8\n\n*Accessories:*\nCase",
		data["message"])
	assert.Equal(t, "https://wa.me/923152561004", data["desktop_link"])
	assert.Contains(t, data["mobile_link"], "https://wa.me/923152561004?text=")
}

func TestPreviewOrderValidationFailure(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"name": "A", "brand": "Apple", "model": "Pixel 8"})
	w := doRequest(srv, http.MethodPost, "/api/v1/orders/preview", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	response := decode(t, w)
	assert.Equal(t, false, response["success"])

	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	fields := errObj["fields"].(map[string]interface{})
	assert.Equal(t, "Full name must be at least 2 characters", fields["name"])
	assert.Equal(t, "Please enter a valid mobile number", fields["mobile"])
	assert.Equal(t, "Please select a model for the selected brand", fields["model"])
	assert.NotContains(t, fields, "brand")
}

func TestPreviewOrderBadJSON(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/v1/orders/preview", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errObj := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, "https://shop.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCheckOrigin(t *testing.T) {
	srv := newTestServer(t, "https://shop.example.com")

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://desk.local:8080", true},
		{"https://shop.example.com", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://desk.local:8080/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, srv.checkOrigin(req))
		})
	}
}
