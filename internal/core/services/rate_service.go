package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/siperka/siperka_backend/internal/apperrors"
	"github.com/siperka/siperka_backend/internal/clients/rates"
	"github.com/siperka/siperka_backend/internal/core/domain"
	portsrepo "github.com/siperka/siperka_backend/internal/core/ports/repositories"
)

const dateLayout = "2006-01-02"

// persistTimeout bounds the background writes issued on the fetch-and-cache
// path so an unreachable database cannot leak goroutines.
const persistTimeout = 5 * time.Second

// RateService resolves the USD->IDR rate. For the current rate it walks a
// strict fallback chain: fresh memory cache, the live providers in precedence
// order, stale memory cache, then the persisted record. For a historical date
// it consults memory, the persisted record and the date-indexed provider
// before degrading to the current rate.
type RateService struct {
	providers  []rates.CurrentRateProvider
	historical rates.HistoricalRateProvider
	store      portsrepo.RateStoreRepositoryFacade
	cache      *RateCache
	logger     *slog.Logger
}

// NewRateService creates a RateService. Providers are attempted in the order
// given; the slice may be empty, in which case only cache and store answer.
func NewRateService(
	providers []rates.CurrentRateProvider,
	historical rates.HistoricalRateProvider,
	store portsrepo.RateStoreRepositoryFacade,
	cache *RateCache,
	logger *slog.Logger,
) *RateService {
	return &RateService{
		providers:  providers,
		historical: historical,
		store:      store,
		cache:      cache,
		logger:     logger,
	}
}

// GetCurrentRate resolves the current rate through the fallback chain. Only
// exhaustion of every tier produces an error (apperrors.ErrRateUnavailable);
// provider failures merely degrade the quote's source tag.
func (s *RateService) GetCurrentRate(ctx context.Context, forceRefresh bool) (*domain.RateQuote, error) {
	if !forceRefresh {
		if value, fetchedAt, ok := s.cache.GetCurrentIfFresh(); ok {
			return &domain.RateQuote{Value: value, Source: domain.RateSourceCache, FetchedAt: fetchedAt}, nil
		}
	}

	for _, provider := range s.providers {
		value, err := provider.FetchCurrent(ctx)
		if err != nil {
			s.logger.Warn("rate provider failed",
				slog.String("provider", string(provider.Name())),
				slog.String("error", err.Error()))
			continue
		}
		s.cache.SetCurrent(value)
		s.persistCurrentAsync(value, provider.Name())
		s.logger.Info("current rate fetched",
			slog.String("provider", string(provider.Name())),
			slog.Float64("value", value))
		return &domain.RateQuote{Value: value, Source: provider.Name(), FetchedAt: time.Now()}, nil
	}

	// All live sources failed; a stale in-memory value beats a hard error.
	if value, fetchedAt, ok := s.cache.GetCurrentAny(); ok {
		s.logger.Warn("all live rate providers failed, serving stale cached rate",
			slog.Time("fetched_at", fetchedAt))
		return &domain.RateQuote{Value: value, Source: domain.RateSourceCacheFallback, FetchedAt: fetchedAt}, nil
	}

	record, err := s.store.GetCurrentRate(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("failed to read persisted rate", slog.String("error", err.Error()))
		}
		return nil, apperrors.ErrRateUnavailable
	}
	if !validRateValue(record.Value) {
		// A zero or negative row can only come from out-of-band writes; it
		// must never seed the cache or reach the estimation math.
		s.logger.Error("ignoring invalid persisted rate record",
			slog.Float64("value", record.Value))
		return nil, apperrors.ErrRateUnavailable
	}

	s.cache.SetCurrent(record.Value)
	return &domain.RateQuote{Value: record.Value, Source: domain.RateSourceDatabase, FetchedAt: record.UpdatedAt}, nil
}

// GetRateForDate resolves the rate in effect on one calendar date. Date input
// is normalized to YYYY-MM-DD; anything unparseable is a validation error.
// Beyond that the lookup has no hard failure mode of its own: when neither
// memory, store nor the historical provider answers, it degrades to the
// current rate tagged fallback_current.
func (s *RateService) GetRateForDate(ctx context.Context, date string) (*domain.RateQuote, error) {
	dateISO, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	if value, ok := s.cache.GetHistorical(dateISO); ok {
		return &domain.RateQuote{Value: value, Source: domain.RateSourceCache, FetchedAt: time.Now(), Date: dateISO}, nil
	}

	record, err := s.store.GetHistoricalRate(ctx, dateISO)
	if err == nil {
		if validRateValue(record.Value) {
			s.cache.SetHistorical(dateISO, record.Value)
			return &domain.RateQuote{Value: record.Value, Source: domain.RateSourceDatabase, FetchedAt: record.UpdatedAt, Date: dateISO}, nil
		}
		s.logger.Warn("ignoring invalid persisted historical rate",
			slog.String("date", dateISO), slog.Float64("value", record.Value))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("failed to read persisted historical rate",
			slog.String("date", dateISO), slog.String("error", err.Error()))
	}

	value, err := s.historical.FetchForDate(ctx, dateISO)
	if err == nil {
		s.cache.SetHistorical(dateISO, value)
		s.persistHistoricalAsync(dateISO, value, domain.RateSourceFrankfurterHis)
		return &domain.RateQuote{Value: value, Source: domain.RateSourceFrankfurterHis, FetchedAt: time.Now(), Date: dateISO}, nil
	}
	s.logger.Warn("historical rate provider failed",
		slog.String("date", dateISO), slog.String("error", err.Error()))

	// Same-day approximation: an old purchase priced at today's rate is a
	// known accuracy loss for dates no source can answer, surfaced only
	// through the source tag.
	current, err := s.GetCurrentRate(ctx, false)
	if err != nil {
		return nil, err
	}
	return &domain.RateQuote{Value: current.Value, Source: domain.RateSourceFallbackCurrent, FetchedAt: time.Now(), Date: dateISO}, nil
}

// UpdateRateManually persists an administrator-supplied override and updates
// the memory cache. Unlike the fetch path, persistence here is synchronous
// and its failure is surfaced: durability is the point of this operation.
func (s *RateService) UpdateRateManually(ctx context.Context, value float64, updatedBy string) (*domain.RateRecord, error) {
	if !validRateValue(value) {
		return nil, fmt.Errorf("%w: rate value must be a positive number", apperrors.ErrValidation)
	}
	if updatedBy == "" {
		updatedBy = "system"
	}

	record := domain.RateRecord{
		Value:     value,
		Source:    domain.RateSourceManual,
		UpdatedAt: time.Now(),
		UpdatedBy: updatedBy,
	}

	if err := s.store.SaveCurrentRate(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist manual rate update: %w", err)
	}

	s.cache.SetCurrent(value)
	s.logger.Info("rate updated manually",
		slog.Float64("value", value), slog.String("updated_by", updatedBy))
	return &record, nil
}

// persistCurrentAsync writes the freshly fetched rate to the store without
// blocking the read path. Failure is logged and ignored.
func (s *RateService) persistCurrentAsync(value float64, source domain.RateSource) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		record := domain.RateRecord{Value: value, Source: source, UpdatedAt: time.Now()}
		if err := s.store.SaveCurrentRate(ctx, record); err != nil {
			s.logger.Error("failed to persist current rate",
				slog.String("source", string(source)), slog.String("error", err.Error()))
		}
	}()
}

// persistHistoricalAsync writes a newly resolved historical rate to the store
// without blocking the read path. Failure is logged and ignored.
func (s *RateService) persistHistoricalAsync(date string, value float64, source domain.RateSource) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		record := domain.HistoricalRateRecord{Date: date, Value: value, Source: source, UpdatedAt: time.Now()}
		if err := s.store.SaveHistoricalRate(ctx, record); err != nil {
			s.logger.Error("failed to persist historical rate",
				slog.String("date", date), slog.String("error", err.Error()))
		}
	}()
}

// validRateValue mirrors the provider-side check: every value that enters the
// cache or leaves the resolver must be finite and positive.
func validRateValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// normalizeDate accepts a plain calendar date or a full RFC 3339 timestamp
// and reduces it to YYYY-MM-DD.
func normalizeDate(date string) (string, error) {
	if date == "" {
		return "", fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if t, err := time.Parse(dateLayout, date); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format(dateLayout), nil
	}
	return "", fmt.Errorf("%w: date must be in YYYY-MM-DD format", apperrors.ErrValidation)
}
