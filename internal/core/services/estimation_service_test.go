package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/core/domain"
	"github.com/siperka/siperka_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateReaderSvc ---
type MockRateReader struct {
	mock.Mock
}

func (m *MockRateReader) GetCurrentRate(ctx context.Context, forceRefresh bool) (*domain.RateQuote, error) {
	args := m.Called(ctx, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

func (m *MockRateReader) GetRateForDate(ctx context.Context, date string) (*domain.RateQuote, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

// --- Mock ProcurementRepository ---
type MockProcurementRepo struct {
	mock.Mock
}

func (m *MockProcurementRepo) FindByProductName(ctx context.Context, productName string) ([]domain.ProcurementRecord, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProcurementRecord), args.Error(1)
}

// --- Mock EstimationRepository ---
type MockEstimationRepo struct {
	mock.Mock
}

func (m *MockEstimationRepo) SaveEstimation(ctx context.Context, record domain.EstimationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEstimationRepo) ListEstimations(ctx context.Context, limit int) ([]domain.EstimationRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EstimationRecord), args.Error(1)
}

// --- Test Suite ---
type EstimationServiceTestSuite struct {
	suite.Suite
	mockRates       *MockRateReader
	mockProcurement *MockProcurementRepo
	mockEstimations *MockEstimationRepo
	service         *services.EstimationService
}

func (suite *EstimationServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockRateReader)
	suite.mockProcurement = new(MockProcurementRepo)
	suite.mockEstimations = new(MockEstimationRepo)
	suite.service = services.NewEstimationService(suite.mockRates, suite.mockProcurement, suite.mockEstimations, testLogger())
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_NormalizesAcrossRates() {
	ctx := context.Background()
	records := []domain.ProcurementRecord{
		{ProcurementID: "p1", ProductName: "Server Rack", TotalPrice: decimal.NewFromInt(15_000_000), ReleaseDate: mustDate("2015-06-01")},
		{ProcurementID: "p2", ProductName: "Server Rack", TotalPrice: decimal.NewFromInt(16_000_000), ReleaseDate: mustDate("2020-03-15")},
	}
	suite.mockRates.On("GetCurrentRate", ctx, false).Return(&domain.RateQuote{Value: 15750, Source: domain.RateSourceFrankfurter}, nil).Once()
	suite.mockProcurement.On("FindByProductName", ctx, "Server Rack").Return(records, nil).Once()
	suite.mockRates.On("GetRateForDate", ctx, "2015-06-01").Return(&domain.RateQuote{Value: 15000, Date: "2015-06-01"}, nil).Once()
	suite.mockRates.On("GetRateForDate", ctx, "2020-03-15").Return(&domain.RateQuote{Value: 15600, Date: "2020-03-15"}, nil).Once()

	estimation, err := suite.service.EstimateProductCost(ctx, "Server Rack")

	suite.Require().NoError(err)
	suite.Equal("Server Rack", estimation.ProductName)
	suite.Equal(15750.0, estimation.CurrentRate)
	suite.Equal(2, estimation.RecordCount)

	// 15,000,000 * 15750/15000 = 15,750,000; 16,000,000 * 15750/15600 = 16,153,846.
	suite.Require().Len(estimation.History, 2)
	suite.True(estimation.History[0].NormalizedPrice.Equal(decimal.NewFromInt(15_750_000)),
		"got %s", estimation.History[0].NormalizedPrice)
	suite.True(estimation.History[1].NormalizedPrice.Equal(decimal.NewFromInt(16_153_846)),
		"got %s", estimation.History[1].NormalizedPrice)
	suite.Equal(2015, estimation.History[0].Year)
	suite.Equal(2020, estimation.History[1].Year)
	suite.Equal(15000.0, estimation.History[0].RateAtPurchase)
	suite.Equal(15600.0, estimation.History[1].RateAtPurchase)

	// Mean of the normalized prices, and its USD restatement.
	suite.True(estimation.EstimatedPrice.Equal(decimal.NewFromInt(15_951_923)),
		"got %s", estimation.EstimatedPrice)
	suite.True(estimation.EstimatedPriceUSD.Equal(decimal.NewFromFloat(1012.82)),
		"got %s", estimation.EstimatedPriceUSD)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_SharedDateResolvedOnce() {
	ctx := context.Background()
	records := []domain.ProcurementRecord{
		{ProcurementID: "p1", ProductName: "Switch", TotalPrice: decimal.NewFromInt(1_000_000), ReleaseDate: mustDate("2021-01-10")},
		{ProcurementID: "p2", ProductName: "Switch", TotalPrice: decimal.NewFromInt(2_000_000), ReleaseDate: mustDate("2021-01-10")},
	}
	suite.mockRates.On("GetCurrentRate", ctx, false).Return(&domain.RateQuote{Value: 15750}, nil).Once()
	suite.mockProcurement.On("FindByProductName", ctx, "Switch").Return(records, nil).Once()
	suite.mockRates.On("GetRateForDate", ctx, "2021-01-10").Return(&domain.RateQuote{Value: 14000, Date: "2021-01-10"}, nil).Once()

	estimation, err := suite.service.EstimateProductCost(ctx, "Switch")

	suite.Require().NoError(err)
	suite.Equal(2, estimation.RecordCount)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_EmptyProductName() {
	_, err := suite.service.EstimateProductCost(context.Background(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRates.AssertNotCalled(suite.T(), "GetCurrentRate", mock.Anything, mock.Anything)
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_NoHistory() {
	ctx := context.Background()
	suite.mockRates.On("GetCurrentRate", ctx, false).Return(&domain.RateQuote{Value: 15750}, nil).Once()
	suite.mockProcurement.On("FindByProductName", ctx, "Unknown").Return([]domain.ProcurementRecord{}, nil).Once()

	_, err := suite.service.EstimateProductCost(ctx, "Unknown")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_RateUnavailable() {
	ctx := context.Background()
	suite.mockRates.On("GetCurrentRate", ctx, false).Return(nil, apperrors.ErrRateUnavailable).Once()

	_, err := suite.service.EstimateProductCost(ctx, "Server Rack")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockProcurement.AssertNotCalled(suite.T(), "FindByProductName", mock.Anything, mock.Anything)
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_NonPositiveCurrentRate() {
	ctx := context.Background()
	// A zero rate reaching the engine would panic decimal division; it must
	// surface as rate-unavailable instead.
	suite.mockRates.On("GetCurrentRate", ctx, false).Return(&domain.RateQuote{Value: 0, Source: domain.RateSourceDatabase}, nil).Once()

	_, err := suite.service.EstimateProductCost(ctx, "Server Rack")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockProcurement.AssertNotCalled(suite.T(), "FindByProductName", mock.Anything, mock.Anything)
}

func (suite *EstimationServiceTestSuite) TestEstimateProductCost_HistoricalLookupFailureUsesCurrentRate() {
	ctx := context.Background()
	records := []domain.ProcurementRecord{
		{ProcurementID: "p1", ProductName: "Router", TotalPrice: decimal.NewFromInt(5_000_000), ReleaseDate: mustDate("2019-07-20")},
	}
	suite.mockRates.On("GetCurrentRate", ctx, false).Return(&domain.RateQuote{Value: 15750}, nil).Once()
	suite.mockProcurement.On("FindByProductName", ctx, "Router").Return(records, nil).Once()
	suite.mockRates.On("GetRateForDate", ctx, "2019-07-20").Return(nil, errors.New("all sources down")).Once()

	estimation, err := suite.service.EstimateProductCost(ctx, "Router")

	suite.Require().NoError(err)
	// With the purchase-date rate equal to the current rate, normalization
	// leaves the price unchanged.
	suite.True(estimation.EstimatedPrice.Equal(decimal.NewFromInt(5_000_000)),
		"got %s", estimation.EstimatedPrice)
	suite.Equal(15750.0, estimation.History[0].RateAtPurchase)
}

func (suite *EstimationServiceTestSuite) TestSaveEstimation_Success() {
	ctx := context.Background()
	suite.mockEstimations.On("SaveEstimation", ctx, mock.MatchedBy(func(r domain.EstimationRecord) bool {
		return r.ProductName == "Server Rack" && r.EstimationID != "" && r.CreatedBy == "user-1"
	})).Return(nil).Once()

	record, err := suite.service.SaveEstimation(ctx, "Server Rack", decimal.NewFromInt(15_951_923), 15750, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(record.EstimationID)
	suite.Equal("user-1", record.CreatedBy)
	suite.Equal("user-1", record.LastUpdatedBy)
	suite.mockEstimations.AssertExpectations(suite.T())
}

func (suite *EstimationServiceTestSuite) TestSaveEstimation_Validation() {
	ctx := context.Background()

	_, err := suite.service.SaveEstimation(ctx, "", decimal.NewFromInt(100), 15750, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SaveEstimation(ctx, "Server Rack", decimal.Zero, 15750, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SaveEstimation(ctx, "Server Rack", decimal.NewFromInt(100), 0, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockEstimations.AssertNotCalled(suite.T(), "SaveEstimation", mock.Anything, mock.Anything)
}

func (suite *EstimationServiceTestSuite) TestListEstimations_NormalizesLimit() {
	ctx := context.Background()
	suite.mockEstimations.On("ListEstimations", ctx, 50).Return([]domain.EstimationRecord{}, nil).Twice()
	suite.mockEstimations.On("ListEstimations", ctx, 10).Return([]domain.EstimationRecord{}, nil).Once()

	_, err := suite.service.ListEstimations(ctx, 0)
	suite.Require().NoError(err)
	_, err = suite.service.ListEstimations(ctx, 500)
	suite.Require().NoError(err)
	_, err = suite.service.ListEstimations(ctx, 10)
	suite.Require().NoError(err)

	suite.mockEstimations.AssertExpectations(suite.T())
}

func TestEstimationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EstimationServiceTestSuite))
}
