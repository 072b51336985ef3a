package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "found": ok})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestEngine(AuthMiddleware(testSecret, "pfa"))

	token, _, err := utils.GenerateJWT("user-1", testSecret, time.Hour, "pfa")
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("user-1", testSecret, -time.Hour, "pfa")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"userID":"user-1","found":true}`, w.Body.String())
			}
		})
	}
}

func TestWebhookAPIKey(t *testing.T) {
	open := newTestEngine(WebhookAPIKey(""))
	w := httptest.NewRecorder()
	open.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	guarded := newTestEngine(WebhookAPIKey("k1"))
	w = httptest.NewRecorder()
	guarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("x-api-key", "k1")
	guarded.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewMemoryLimiter("2-M")
	require.NoError(t, err)
	r := newTestEngine(RateLimit(lim))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewMemoryLimiter("nonsense")
	assert.Error(t, err)
}

func TestGetLoggerFromCtxFallsBack(t *testing.T) {
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(context.Background()))
}

func TestRouteEvent(t *testing.T) {
	tests := []struct {
		method, path string
		want         string
		tracked      bool
	}{
		{http.MethodPost, "/api/v1/bills/:id/pay", "bill_paid", true},
		{http.MethodDelete, "/api/v1/loans/:id/payments/:paymentId", "loan_payment_deleted", true},
		{http.MethodPost, "/api/v1/goals/:id/contributions", "goal_contribution_added", true},
		{http.MethodPut, "/api/v1/users/me", "profile_updated", true},
		{http.MethodGet, "/api/v1/bills", "", false},
		{http.MethodPost, "/api/v1/transactions", "", false},
		{http.MethodPost, "/api/v1/auth/login", "", false},
		{http.MethodPost, "/webhooks/whatsapp", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			event, ok := routeEvent(tt.method, tt.path)
			assert.Equal(t, tt.tracked, ok)
			assert.Equal(t, tt.want, event)
		})
	}
}

func TestPosthogMiddlewareWithoutClient(t *testing.T) {
	for _, client := range []*utils.PosthogClientWrapper{nil, utils.InitializePosthogClient("", slog.Default())} {
		r := newTestEngine(AuthMiddleware(testSecret, "pfa"), PosthogMiddleware(client))
		token, _, err := utils.GenerateJWT("user-1", testSecret, time.Hour, "pfa")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
