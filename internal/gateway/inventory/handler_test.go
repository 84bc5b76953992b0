package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-gateway/internal/clients/rento"
	"rental-gateway/internal/common/config"
	"rental-gateway/internal/common/logger"
)

func createTestHandler(t *testing.T, upstream http.Handler) *Handler {
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := config.RentoConfig{BaseURL: srv.URL, ChatApp: "bot9", Timeout: 5000}
	log := logger.NewTestLogger(t)
	return NewHandler(NewService(rento.NewClient(cfg), log), log)
}

func performRequest(h *Handler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/productInventory", h.Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const activeProducts = `[
	{"id":301,"productName":"Queen Bed","category":"Furniture","rentAmount":899,"tenure":12,"status":"active","warehouseOnly":true},
	{"id":302,"productName":"Fridge 260L","category":"Appliances","rentAmount":1099,"tenure":6,"status":"active"}
]`

func TestHandler_GetActiveProductList_RawPassthrough(t *testing.T) {
	handler := createTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Dashboards/activeProductList", r.URL.Path)
		require.Equal(t, "user-token", r.Header.Get("authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(activeProducts))
	}))

	w := performRequest(handler, "/api/productInventory?token=user-token&operation=getActiveProductList")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ActiveProductList", body["type"])

	rows := body["data"].([]interface{})
	require.Len(t, rows, 2)
	// Raw rows keep fields the shaped view drops.
	assert.Equal(t, true, rows[0].(map[string]interface{})["warehouseOnly"])
}

func TestHandler_ShowActiveProducts_ShapesRows(t *testing.T) {
	handler := createTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(activeProducts))
	}))

	w := performRequest(handler, "/api/productInventory?token=abc&operation=showActiveProducts")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FormattedActiveProducts", body["type"])
	assert.Equal(t, "These are your active rented products.", body["message"])
	assert.Equal(t, "Swipe or scroll to view all your active products.", body["instruction"])

	rows := body["data"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]interface{}{
		"id":         float64(301),
		"name":       "Queen Bed",
		"category":   "Furniture",
		"rentAmount": float64(899),
		"tenure":     float64(12),
		"status":     "active",
	}, rows[0])
}

func TestHandler_Guards(t *testing.T) {
	handler := createTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call: %s", r.URL.Path)
	}))

	tests := []struct {
		name          string
		target        string
		expectedError string
	}{
		{"missing token", "/api/productInventory?operation=showActiveProducts", "Token is required"},
		{"missing operation", "/api/productInventory?token=abc", "Operation is required"},
		{"unknown operation", "/api/productInventory?token=abc&operation=listEverything", "Invalid operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(handler, tt.target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}
