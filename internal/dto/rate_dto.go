package dto

import (
	"time"

	"github.com/siperka/siperka_backend/internal/core/domain"
)

// UpdateRateRequest defines the payload for a manual rate override.
type UpdateRateRequest struct {
	Value float64 `json:"value" binding:"required,gt=0"`
}

// RateResponse defines the API response for the current rate.
type RateResponse struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// ToRateResponse converts a domain.RateQuote to a RateResponse DTO.
func ToRateResponse(quote *domain.RateQuote) RateResponse {
	return RateResponse{
		ID:        "jisdor",
		Value:     quote.Value,
		Source:    string(quote.Source),
		FetchedAt: quote.FetchedAt,
	}
}

// HistoricalRateResponse defines the API response for a dated rate lookup.
type HistoricalRateResponse struct {
	Value  float64 `json:"value"`
	Source string  `json:"source"`
	Date   string  `json:"date"`
}

// ToHistoricalRateResponse converts a dated domain.RateQuote to a HistoricalRateResponse DTO.
func ToHistoricalRateResponse(quote *domain.RateQuote) HistoricalRateResponse {
	return HistoricalRateResponse{
		Value:  quote.Value,
		Source: string(quote.Source),
		Date:   quote.Date,
	}
}

// RateRecordResponse defines the API response for a persisted rate record,
// returned by the manual update endpoint.
type RateRecordResponse struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// ToRateRecordResponse converts a domain.RateRecord to a RateRecordResponse DTO.
func ToRateRecordResponse(record *domain.RateRecord) RateRecordResponse {
	return RateRecordResponse{
		ID:        "jisdor",
		Value:     record.Value,
		Source:    string(record.Source),
		UpdatedAt: record.UpdatedAt,
		UpdatedBy: record.UpdatedBy,
	}
}
