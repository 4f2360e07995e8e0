package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botdash/internal/infrastructure"
	"botdash/internal/usecases"
)

var refTime = time.Date(2024, 1, 16, 11, 0, 0, 0, time.UTC)

func newRouter(t *testing.T, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := infrastructure.NewDatasetStore("", zerolog.Nop())
	require.NoError(t, err)
	dashboard := usecases.NewDashboardUsecase(store, func() time.Time { return refTime }, 0)

	r := gin.New()
	limiter := infrastructure.NewClientRateLimiter(0.001, burst, time.Minute)
	SetupRoutes(r, dashboard, NewMiddleware(limiter, zerolog.Nop()), zerolog.Nop(), RouterOptions{MaxBodyBytes: 1 << 16})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndTenants(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["tenants"])

	w = do(r, http.MethodGet, "/api/tenants", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tenants"], 2)

	w = do(r, http.MethodGet, "/api/tenants/lekki-shortlets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 2)
}

func TestGetDashboard(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodGet, "/api/tenants/marmen/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Metrics []struct {
			Key     string   `json:"key"`
			Value   *float64 `json:"value"`
			Display string   `json:"display"`
		} `json:"metrics"`
		Activity []struct {
			ID string `json:"id"`
		} `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Activity, 10)
	assert.Equal(t, "conv-006", view.Activity[0].ID)
	for _, m := range view.Metrics {
		if m.Key == "average_order_value" {
			require.NotNil(t, m.Value)
			assert.Equal(t, 16080.0, *m.Value)
			assert.Equal(t, "₦16,080", m.Display)
		}
	}
}

func TestNotFound(t *testing.T) {
	r := newRouter(t, 100)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/tenants/nobody/dashboard", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/tenants/lekki-shortlets/orders", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/tenants/marmen/viewings", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/tenants/marmen/conversations/conv-404", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/tenants/Bad_Slug/dashboard", "").Code)
}

func TestListOrdersFilters(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodGet, "/api/tenants/marmen/orders?status=pending&q=ORD", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["items"], 2)
	assert.Equal(t, float64(8), body["total"])

	w = do(r, http.MethodGet, "/api/tenants/marmen/orders?status=Not-A-Status", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/tenants/marmen/orders?q="+strings.Repeat("x", MaxQueryLength+1), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newRouter(t, 100)
	path := "/api/tenants/marmen/orders/ORD-2024-004/status"

	w := do(r, http.MethodPut, path, `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode(t, w)["payment_status"])

	w = do(r, http.MethodPut, path, `{"status":"failed"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["error"], `cannot change status from "confirmed" to "failed"`)

	w = do(r, http.MethodGet, "/api/tenants/marmen/orders?q=ORD-2024-004", "")
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "confirmed", items[0].(map[string]any)["payment_status"])

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, path, `{"status":"refunded"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, path, `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/tenants/marmen/orders/ORD-404/status", `{"status":"confirmed"}`).Code)
}

func TestUpdateViewingStatus(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodPut, "/api/tenants/lekki-shortlets/viewings/VW-2024-002/status", `{"status":"no_show"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no_show", decode(t, w)["status"])

	w = do(r, http.MethodPut, "/api/tenants/lekki-shortlets/viewings/VW-2024-005/status", `{"status":"scheduled"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExportOrders(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodGet, "/api/tenants/marmen/orders/export?status=confirmed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "marmen-orders.csv")
	assert.Equal(t, 6, strings.Count(w.Body.String(), "\n"))
}

func TestSettings(t *testing.T) {
	r := newRouter(t, 100)
	path := "/api/tenants/marmen/settings"

	w := do(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode(t, w)

	settings["email"] = "not-an-email"
	bad, _ := json.Marshal(settings)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, path, string(bad)).Code)

	settings["email"] = "orders@marmen.ng"
	good, _ := json.Marshal(settings)
	w = do(r, http.MethodPut, path, string(good))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "orders@marmen.ng", decode(t, do(r, http.MethodGet, path, ""))["email"])

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, path, `{"email":`).Code)
}

func TestChatQR(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodGet, "/api/tenants/marmen/settings/qr.png", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestRequestID(t *testing.T) {
	r := newRouter(t, 100)

	w := do(r, http.MethodGet, "/healthz", "")
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRateLimit(t *testing.T) {
	r := newRouter(t, 1)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/tenants", "").Code)
	w := do(r, http.MethodGet, "/api/tenants", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code, "health is not rate limited")
}
