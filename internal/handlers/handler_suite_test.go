package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/handlers"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "pfa-test"
	testUserID = "user-1"
)

// handlerSuite wires the real router to mock services. Suites for each area embed it.
type handlerSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config

	users        *MockUserService
	tokens       *MockTokenService
	google       *MockGoogleService
	transactions *MockTransactionService
	bills        *MockBillService
	loans        *MockLoanService
	budgets      *MockBudgetService
	goals        *MockGoalService
	reporting    *MockReportingService
	imports      *MockImportService
	whatsapp     *MockWhatsAppService
	advice       *MockAdviceService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = &config.Config{
		IsProduction:               true,
		JWTSecret:                  testSecret,
		JWTIssuer:                  testIssuer,
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 24 * time.Hour,
		RefreshTokenCookieName:     "rtid",
		RefreshTokenCookiePath:     "/api/v1/auth",
		WhatsAppVerifyToken:        "verify-me",
		WhatsAppAPIKey:             "gateway-key",
		LoginRateLimit:             "100-M",
		AdviceRateLimit:            "100-H",
	}
	s.users = new(MockUserService)
	s.tokens = new(MockTokenService)
	s.google = new(MockGoogleService)
	s.transactions = new(MockTransactionService)
	s.bills = new(MockBillService)
	s.loans = new(MockLoanService)
	s.budgets = new(MockBudgetService)
	s.goals = new(MockGoalService)
	s.reporting = new(MockReportingService)
	s.imports = new(MockImportService)
	s.whatsapp = new(MockWhatsAppService)
	s.advice = new(MockAdviceService)
	s.buildRouter()
}

// buildRouter registers routes against the current config; call it again after changing s.cfg.
func (s *handlerSuite) buildRouter() {
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, s.cfg, &portssvc.ServiceContainer{
		User:               s.users,
		TokenService:       s.tokens,
		GoogleOAuthHandler: s.google,
		Transaction:        s.transactions,
		Bill:               s.bills,
		Loan:               s.loans,
		Budget:             s.budgets,
		Goal:               s.goals,
		Reporting:          s.reporting,
		Import:             s.imports,
		WhatsApp:           s.whatsapp,
		Advice:             s.advice,
	}, nil)
}

func (s *handlerSuite) token(userID string) string {
	token, _, err := utils.GenerateJWT(userID, testSecret, time.Hour, testIssuer)
	s.Require().NoError(err)
	return token
}

// do sends body as JSON. An empty userID sends the request unauthenticated.
func (s *handlerSuite) do(method, path string, body any, userID string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, userID)
}

func (s *handlerSuite) serve(req *http.Request, userID string) *httptest.ResponseRecorder {
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(userID))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *handlerSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	s.decode(w, &body)
	return body["error"]
}
