package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/handlers"
	"github.com/SscSPs/gl_backend/internal/middleware"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testIssuer    = "gl-test"
)

// handlerSuite serves the full route table against mocked services.
type handlerSuite struct {
	suite.Suite
	router    *gin.Engine
	companyID string
	userID    string
	token     string

	accounts *MockAccountService
	journals *MockJournalService
	batches  *MockBatchService
	mappings *MockMappingService
	balances *MockBalanceService
	settings *MockSettingsService
	imports  *MockImportService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.accounts = new(MockAccountService)
	s.journals = new(MockJournalService)
	s.batches = new(MockBatchService)
	s.mappings = new(MockMappingService)
	s.balances = new(MockBalanceService)
	s.settings = new(MockSettingsService)
	s.imports = new(MockImportService)

	cfg := &config.Config{JWTSecret: testJWTSecret, JWTIssuer: testIssuer, IsProduction: true}
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, &portssvc.ServiceContainer{
		Account:  s.accounts,
		Journal:  s.journals,
		Batch:    s.batches,
		Mapping:  s.mappings,
		Balance:  s.balances,
		Settings: s.settings,
		Import:   s.imports,
	}, handlers.RouteDeps{})

	s.token = s.generateTestToken(s.userID)
}

func (s *handlerSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.journals.AssertExpectations(s.T())
	s.batches.AssertExpectations(s.T())
	s.mappings.AssertExpectations(s.T())
	s.balances.AssertExpectations(s.T())
	s.settings.AssertExpectations(s.T())
	s.imports.AssertExpectations(s.T())
}

// generateTestToken creates a JWT for testing, optionally scoped to companies.
func (s *handlerSuite) generateTestToken(userID string, companyIDs ...string) string {
	claims := middleware.LedgerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		CompanyIDs: companyIDs,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// path prefixes p with the company-scoped API root.
func (s *handlerSuite) path(p string) string {
	return "/api/v1/companies/" + s.companyID + p
}

func (s *handlerSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	return s.doWithToken(method, url, body, s.token)
}

func (s *handlerSuite) doWithToken(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *handlerSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	return resp
}
