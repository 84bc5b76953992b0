package escalation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-gateway/internal/clients/centercom"
	"rental-gateway/internal/clients/sheety"
	"rental-gateway/internal/common/config"
	"rental-gateway/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func testEscalationConfig() config.EscalationConfig {
	return config.EscalationConfig{
		StartHour:             9,
		EndHour:               20,
		InboxBaseURL:          "https://inbox.example.com",
		DefaultRecipients:     []int64{98143},
		MarketplaceRecipients: []int64{992811, 98143},
		CityRecipients: map[string][]int64{
			"bangalore": {1732788, 1237084, 98143},
			"mumbai":    {1732814, 1497288, 98143},
		},
	}
}

// testBackend fakes the spreadsheet and email upstreams and counts
// what the gateway sent them.
type testBackend struct {
	callbackRows string // JSON array body of the callback sheet
	listCalls    atomic.Int32
	appendCalls  atomic.Int32
	offlineCalls atomic.Int32
	emailCalls   atomic.Int32

	lastAppend map[string]json.RawMessage
	lastEmail  []byte
}

func (b *testBackend) sheetyHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/opsCallback":
			b.listCalls.Add(1)
			w.Write([]byte(`{"opsCallback":` + b.callbackRows + `}`))
		case r.Method == http.MethodPost && r.URL.Path == "/opsCallback":
			b.appendCalls.Add(1)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &b.lastAppend))
			w.Write([]byte(`{"opsCallback":{"id":101}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/offlineHours":
			b.offlineCalls.Add(1)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &b.lastAppend))
			w.Write([]byte(`{"offlineHour":{"id":55}}`))
		default:
			t.Errorf("unexpected sheety call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (b *testBackend) centercomHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/communications/key/send/bulk", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("ApiKey"))
		b.emailCalls.Add(1)
		b.lastEmail, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"queued"}`))
	})
}

func createTestHandler(t *testing.T, backend *testBackend, at time.Time) *Handler {
	sheetySrv := httptest.NewServer(backend.sheetyHandler(t))
	t.Cleanup(sheetySrv.Close)
	centercomSrv := httptest.NewServer(backend.centercomHandler(t))
	t.Cleanup(centercomSrv.Close)

	sheetyClient := sheety.NewClient(config.SheetyConfig{
		BaseURL:        sheetySrv.URL,
		CallbackSheet:  "opsCallback",
		CallbackRowKey: "opsCallback",
		OfflineSheet:   "offlineHours",
		OfflineRowKey:  "offlineHour",
		Timeout:        5000,
	})
	centercomClient := centercom.NewClient(config.CentercomConfig{
		BaseURL:   centercomSrv.URL,
		APIKey:    "test-key",
		EmailType: "Bot9_Email_Internal2",
		EmailName: "bot9 mail",
		Timeout:   5000,
	})

	log := logger.NewTestLogger(t)
	service := NewService(testEscalationConfig(), sheetyClient, centercomClient, log)
	service.now = func() time.Time { return at }
	return NewHandler(service, log)
}

func performRequest(h *Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/escalation", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/escalation", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var (
	businessTime = time.Date(2024, 5, 10, 12, 0, 0, 0, istZone)
	offTime      = time.Date(2024, 5, 10, 22, 30, 0, 0, istZone)
)

// ==========================
// Routing Tests
// ==========================

func TestHandler_ExistingServiceRequest_SendsEmail(t *testing.T) {
	backend := &testBackend{callbackRows: `[{"servicerequestId":5512,"city":"bangalore"}]`}
	handler := createTestHandler(t, backend, businessTime)

	w := performRequest(handler, `{
		"conversationId": "conv-1",
		"servicerequestId": 5512,
		"userid": 42,
		"city": " Bangalore ",
		"voiceofCustomer": "item broken",
		"requestType": "Repair"
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), backend.emailCalls.Load())
	assert.Equal(t, int32(0), backend.appendCalls.Load())
	assert.Equal(t, int32(0), backend.offlineCalls.Load())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email sent successfully for existing service request", resp["message"])
	assert.Equal(t, map[string]interface{}{"status": "queued"}, resp["emailData"])

	var email map[string]interface{}
	require.NoError(t, json.Unmarshal(backend.lastEmail, &email))
	assert.ElementsMatch(t, []interface{}{float64(1732788), float64(1237084), float64(98143)}, email["userIds"])
	assert.Equal(t, []interface{}{"EMAIL"}, email["channels"])
	assert.Equal(t, "Bot9_Email_Internal2", email["type"])
	assert.Equal(t, true, email["duplicateCheck"])

	vars := email["variables"].(map[string]interface{})
	assert.Equal(t, "bangalore", vars["locationName"])
	assert.Equal(t, "5512", vars["ticketId"])
	assert.Equal(t, "item broken", vars["comment"])
}

func TestHandler_UnknownServiceRequest_AppendsCallbackRow(t *testing.T) {
	backend := &testBackend{callbackRows: `[{"servicerequestId":777}]`}
	handler := createTestHandler(t, backend, businessTime)

	w := performRequest(handler, `{
		"conversationId": "conv-2",
		"servicerequestId": 5513,
		"city": "mumbai",
		"warehouseName": "Bhiwandi",
		"marketplace": true
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), backend.appendCalls.Load())
	assert.Equal(t, int32(0), backend.emailCalls.Load())
	assert.JSONEq(t, `{"opsCallback":{"id":101}}`, w.Body.String())

	row := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(backend.lastAppend["opsCallback"], &row))
	assert.Equal(t, "https://inbox.example.com/conv-2?status=bot&search=", row["chatUrl"])
	assert.Equal(t, true, row["marketplace"])
	assert.Equal(t, "Bhiwandi", row["warehouse"])
	assert.Equal(t, "mumbai", row["city"])
}

func TestHandler_OffHours_LogsOfflineRow(t *testing.T) {
	backend := &testBackend{callbackRows: `[]`}
	handler := createTestHandler(t, backend, offTime)

	w := performRequest(handler, `{"conversationId": "conv-3", "city": "pune"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), backend.offlineCalls.Load())
	assert.Equal(t, int32(0), backend.listCalls.Load())
	assert.Equal(t, int32(0), backend.emailCalls.Load())
	assert.JSONEq(t, `{"offlineHour":{"id":55}}`, w.Body.String())

	row := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(backend.lastAppend["offlineHour"], &row))
	assert.Equal(t, "https://inbox.example.com/conv-3?status=bot&search=", row["chatUrl"])
	assert.Equal(t, false, row["marketplace"])
}

func TestService_Escalate_HonorsCallerDecision(t *testing.T) {
	backend := &testBackend{callbackRows: `[]`}
	handler := createTestHandler(t, backend, businessTime)

	// The routing decision is the caller's: even with the clock inside
	// the window, an off-hours decision goes to the offline sheet. This
	// keeps validation and routing on the same side of the window
	// boundary within one request.
	input := &Input{ConversationID: "conv-7", Raw: sheety.Row{"conversationId": "conv-7"}}
	outcome, err := handler.service.Escalate(context.Background(), input, false)
	require.NoError(t, err)

	assert.False(t, outcome.EmailSent)
	assert.Equal(t, int32(1), backend.offlineCalls.Load())
	assert.Equal(t, int32(0), backend.listCalls.Load())
	assert.Equal(t, int32(0), backend.emailCalls.Load())
}

// ==========================
// Input Validation Tests
// ==========================

func TestHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name          string
		at            time.Time
		body          string
		expectedError string
	}{
		{
			name:          "empty body",
			at:            businessTime,
			body:          "",
			expectedError: "Body is required",
		},
		{
			name:          "no conversationId during business hours",
			at:            businessTime,
			body:          `{"servicerequestId": 1}`,
			expectedError: "conversationId and servicerequestId are required in the body",
		},
		{
			name:          "no servicerequestId during business hours",
			at:            businessTime,
			body:          `{"conversationId": "conv-9"}`,
			expectedError: "conversationId and servicerequestId are required in the body",
		},
		{
			name:          "no conversationId off hours",
			at:            offTime,
			body:          `{"city": "pune"}`,
			expectedError: "conversationId is required in the body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &testBackend{callbackRows: `[]`}
			handler := createTestHandler(t, backend, tt.at)

			w := performRequest(handler, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedError, resp["error"])

			assert.Equal(t, int32(0), backend.emailCalls.Load())
			assert.Equal(t, int32(0), backend.appendCalls.Load())
			assert.Equal(t, int32(0), backend.offlineCalls.Load())
		})
	}
}

func TestValidateBody(t *testing.T) {
	assert.NoError(t, ValidateBody([]byte(`{"conversationId":"c1","marketplace":false}`)))
	assert.NoError(t, ValidateBody([]byte(`{"servicerequestId":42}`)))
	assert.Error(t, ValidateBody([]byte(`{"marketplace":"yes"}`)))
	assert.Error(t, ValidateBody([]byte(`{"city":12}`)))
}
