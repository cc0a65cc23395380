package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/core/domain"
	portssvc "github.com/siperka/siperka_backend/internal/core/ports/services"
	"github.com/siperka/siperka_backend/internal/dto"
	"github.com/siperka/siperka_backend/internal/handlers"
	"github.com/siperka/siperka_backend/pkg/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetCurrentRate(ctx context.Context, forceRefresh bool) (*domain.RateQuote, error) {
	args := m.Called(ctx, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

func (m *MockRateService) GetRateForDate(ctx context.Context, date string) (*domain.RateQuote, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

func (m *MockRateService) UpdateRateManually(ctx context.Context, value float64, updatedBy string) (*domain.RateRecord, error) {
	args := m.Called(ctx, value, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Mock EstimationService ---
type MockEstimationService struct {
	mock.Mock
}

func (m *MockEstimationService) EstimateProductCost(ctx context.Context, productName string) (*domain.Estimation, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimation), args.Error(1)
}

func (m *MockEstimationService) ListEstimations(ctx context.Context, limit int) ([]domain.EstimationRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EstimationRecord), args.Error(1)
}

func (m *MockEstimationService) SaveEstimation(ctx context.Context, productName string, estimatedPrice decimal.Decimal, rate float64, createdBy string) (*domain.EstimationRecord, error) {
	args := m.Called(ctx, productName, estimatedPrice, rate, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EstimationRecord), args.Error(1)
}

var _ portssvc.EstimationSvcFacade = (*MockEstimationService)(nil)

// --- Test Suite ---
type RateHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockRates      *MockRateService
	mockEstimation *MockEstimationService
	jwtSecret      string
}

func (suite *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockRates = new(MockRateService)
	suite.mockEstimation = new(MockEstimationService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		RateUpdateLimit: "100-M",
		IsProduction:    true, // keeps swagger routes out of the test router
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Rate:       suite.mockRates,
		Estimation: suite.mockEstimation,
	})
}

// generateTestToken creates a dummy JWT for testing.
func (suite *RateHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "siperka-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *RateHandlerTestSuite) authedRequest(method, url string, body string) *http.Request {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *RateHandlerTestSuite) TestGetCurrentRate_Success() {
	quote := &domain.RateQuote{Value: 15750, Source: domain.RateSourceCache, FetchedAt: time.Now()}
	suite.mockRates.On("GetCurrentRate", mock.Anything, false).Return(quote, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/rates/current", ""))

	suite.Equal(http.StatusOK, w.Code)
	var body dto.RateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("jisdor", body.ID)
	suite.Equal(15750.0, body.Value)
	suite.Equal("cache", body.Source)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetCurrentRate_RefreshQuery() {
	quote := &domain.RateQuote{Value: 15800, Source: domain.RateSourceBISoap, FetchedAt: time.Now()}
	suite.mockRates.On("GetCurrentRate", mock.Anything, true).Return(quote, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/rates/current?refresh=true", ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetCurrentRate_Unavailable() {
	suite.mockRates.On("GetCurrentRate", mock.Anything, false).Return(nil, apperrors.ErrRateUnavailable).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/rates/current", ""))

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *RateHandlerTestSuite) TestGetCurrentRate_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rates/current", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "GetCurrentRate", mock.Anything, mock.Anything)
}

func (suite *RateHandlerTestSuite) TestGetRateForDate_Success() {
	quote := &domain.RateQuote{Value: 14700, Source: domain.RateSourceDatabase, Date: "2023-05-10"}
	suite.mockRates.On("GetRateForDate", mock.Anything, "2023-05-10").Return(quote, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/rates/2023-05-10", ""))

	suite.Equal(http.StatusOK, w.Code)
	var body dto.HistoricalRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(14700.0, body.Value)
	suite.Equal("2023-05-10", body.Date)
}

func (suite *RateHandlerTestSuite) TestGetRateForDate_InvalidDate() {
	suite.mockRates.On("GetRateForDate", mock.Anything, "not-a-date").
		Return(nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/rates/not-a-date", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RateHandlerTestSuite) TestUpdateRate_Success() {
	record := &domain.RateRecord{Value: 15800, Source: domain.RateSourceManual, UpdatedAt: time.Now(), UpdatedBy: "user-1"}
	suite.mockRates.On("UpdateRateManually", mock.Anything, 15800.0, mock.AnythingOfType("string")).Return(record, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/rates/current", `{"value": 15800}`))

	suite.Equal(http.StatusOK, w.Code)
	var body dto.RateRecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(15800.0, body.Value)
	suite.Equal("manual", body.Source)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestUpdateRate_RejectsMissingValue() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/rates/current", `{}`))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "UpdateRateManually", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateHandlerTestSuite) TestCalculateEstimation_Success() {
	estimation := &domain.Estimation{
		ProductName:       "Server Rack",
		EstimatedPrice:    decimal.NewFromInt(15_951_923),
		EstimatedPriceUSD: decimal.NewFromFloat(1012.82),
		CurrentRate:       15750,
		RecordCount:       2,
		GeneratedAt:       time.Now(),
	}
	suite.mockEstimation.On("EstimateProductCost", mock.Anything, "Server Rack").Return(estimation, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/estimations/calculate", `{"productName": "Server Rack"}`))

	suite.Equal(http.StatusOK, w.Code)
	var body dto.EstimationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Server Rack", body.ProductName)
	suite.Equal(2, body.RecordCount)
	suite.mockEstimation.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestCalculateEstimation_ProductNotFound() {
	suite.mockEstimation.On("EstimateProductCost", mock.Anything, "Ghost").
		Return(nil, apperrors.NewNotFoundError("no procurement history")).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/estimations/calculate", `{"productName": "Ghost"}`))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RateHandlerTestSuite) TestSaveEstimation_CreatedWithActingUser() {
	userID := uuid.NewString()
	record := &domain.EstimationRecord{
		EstimationID:   uuid.NewString(),
		ProductName:    "Server Rack",
		EstimatedPrice: decimal.NewFromInt(15_951_923),
		Rate:           15750,
	}
	suite.mockEstimation.On("SaveEstimation", mock.Anything, "Server Rack", mock.Anything, 15750.0, userID).Return(record, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/estimations",
		strings.NewReader(`{"productName": "Server Rack", "estimatedPrice": 15951923, "rate": 15750}`))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockEstimation.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestListEstimations_Success() {
	records := []domain.EstimationRecord{
		{EstimationID: uuid.NewString(), ProductName: "Server Rack", EstimatedPrice: decimal.NewFromInt(15_951_923), Rate: 15750},
	}
	suite.mockEstimation.On("ListEstimations", mock.Anything, 50).Return(records, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/estimations", ""))

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.EstimationRecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 1)
	suite.Equal("Server Rack", body[0].ProductName)
}

func TestRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}
