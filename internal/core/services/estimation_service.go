package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/core/domain"
	portsrepo "github.com/siperka/siperka_backend/internal/core/ports/repositories"
	portssvc "github.com/siperka/siperka_backend/internal/core/ports/services"
)

// EstimationService computes present-day cost estimates for products from
// their procurement history. Each historical price is restated at the current
// exchange rate (undoing exchange movement, not inflation) and the estimate
// is the mean of the restated prices.
type EstimationService struct {
	rateService     portssvc.RateReaderSvc
	procurementRepo portsrepo.ProcurementRepositoryFacade
	estimationRepo  portsrepo.EstimationRepositoryFacade
	logger          *slog.Logger
}

// NewEstimationService creates a new EstimationService.
func NewEstimationService(
	rateService portssvc.RateReaderSvc,
	procurementRepo portsrepo.ProcurementRepositoryFacade,
	estimationRepo portsrepo.EstimationRepositoryFacade,
	logger *slog.Logger,
) *EstimationService {
	return &EstimationService{
		rateService:     rateService,
		procurementRepo: procurementRepo,
		estimationRepo:  estimationRepo,
		logger:          logger,
	}
}

// EstimateProductCost resolves the current rate, collects the product's
// procurement records and normalizes each to current-rate terms. Historical
// rates are resolved once per distinct release date, concurrently; the
// lookups are independent and order-insensitive.
func (s *EstimationService) EstimateProductCost(ctx context.Context, productName string) (*domain.Estimation, error) {
	if productName == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}

	currentQuote, err := s.rateService.GetCurrentRate(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current rate: %w", err)
	}
	kursNow := currentQuote.Value
	if kursNow <= 0 {
		// decimal.Div panics on a zero divisor; a non-positive rate must stop
		// here no matter which tier produced it.
		return nil, fmt.Errorf("%w: current rate %v is not usable", apperrors.ErrRateUnavailable, kursNow)
	}

	records, err := s.procurementRepo.FindByProductName(ctx, productName)
	if err != nil {
		return nil, fmt.Errorf("failed to load procurement history: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no procurement history for product %q", apperrors.ErrNotFound, productName)
	}

	rateByDate := s.resolveHistoricalRates(ctx, records)

	kursNowDec := decimal.NewFromFloat(kursNow)
	history := make([]domain.NormalizedProcurement, 0, len(records))
	total := decimal.Zero
	for _, record := range records {
		dateISO := record.ReleaseDate.Format(dateLayout)
		kursAsli := rateByDate[dateISO]
		if kursAsli <= 0 {
			// No usable historical rate for this date; skip normalization
			// for the record rather than divide by zero.
			kursAsli = kursNow
		}

		normalized := record.TotalPrice.Mul(kursNowDec).Div(decimal.NewFromFloat(kursAsli)).Round(0)
		history = append(history, domain.NormalizedProcurement{
			Year:            record.ReleaseDate.Year(),
			OriginalPrice:   record.TotalPrice,
			RateAtPurchase:  kursAsli,
			NormalizedPrice: normalized,
		})
		total = total.Add(normalized)
	}

	estimatedPrice := total.Div(decimal.NewFromInt(int64(len(history)))).Round(0)
	estimatedPriceUSD := estimatedPrice.Div(kursNowDec).Round(2)

	return &domain.Estimation{
		ProductName:       productName,
		EstimatedPrice:    estimatedPrice,
		EstimatedPriceUSD: estimatedPriceUSD,
		CurrentRate:       kursNow,
		History:           history,
		RecordCount:       len(history),
		GeneratedAt:       time.Now(),
	}, nil
}

// resolveHistoricalRates fans out one GetRateForDate call per distinct
// release date and joins before returning. A failed lookup leaves its date
// out of the map; the caller substitutes the current rate.
func (s *EstimationService) resolveHistoricalRates(ctx context.Context, records []domain.ProcurementRecord) map[string]float64 {
	distinct := make(map[string]struct{}, len(records))
	for _, record := range records {
		distinct[record.ReleaseDate.Format(dateLayout)] = struct{}{}
	}

	rateByDate := make(map[string]float64, len(distinct))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for date := range distinct {
		wg.Add(1)
		go func(date string) {
			defer wg.Done()
			quote, err := s.rateService.GetRateForDate(ctx, date)
			if err != nil {
				s.logger.Warn("failed to resolve historical rate",
					slog.String("date", date), slog.String("error", err.Error()))
				return
			}
			mu.Lock()
			rateByDate[date] = quote.Value
			mu.Unlock()
		}(date)
	}
	wg.Wait()

	return rateByDate
}

// SaveEstimation persists a computed estimation to the history.
func (s *EstimationService) SaveEstimation(ctx context.Context, productName string, estimatedPrice decimal.Decimal, rate float64, createdBy string) (*domain.EstimationRecord, error) {
	if productName == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if estimatedPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: estimated price must be positive", apperrors.ErrValidation)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	record := domain.EstimationRecord{
		EstimationID:   uuid.NewString(),
		ProductName:    productName,
		EstimatedPrice: estimatedPrice,
		Rate:           rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.estimationRepo.SaveEstimation(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save estimation: %w", err)
	}
	return &record, nil
}

// ListEstimations retrieves saved estimation results, newest first.
func (s *EstimationService) ListEstimations(ctx context.Context, limit int) ([]domain.EstimationRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	records, err := s.estimationRepo.ListEstimations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimations: %w", err)
	}
	return records, nil
}
