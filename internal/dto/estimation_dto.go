package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/siperka/siperka_backend/internal/core/domain"
)

// CalculateEstimationRequest defines the payload for a cost estimation.
type CalculateEstimationRequest struct {
	ProductName string `json:"productName" binding:"required"`
}

// SaveEstimationRequest defines the payload for saving a computed estimation.
type SaveEstimationRequest struct {
	ProductName    string          `json:"productName" binding:"required"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice" binding:"required"`
	Rate           float64         `json:"rate" binding:"required,gt=0"`
}

// NormalizedProcurementResponse is one history row of an estimation response.
type NormalizedProcurementResponse struct {
	Year            int             `json:"year"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	RateAtPurchase  float64         `json:"rateAtPurchase"`
	NormalizedPrice decimal.Decimal `json:"normalizedPrice"`
}

// EstimationResponse defines the API response for a computed estimation.
type EstimationResponse struct {
	ProductName       string                          `json:"productName"`
	EstimatedPrice    decimal.Decimal                 `json:"estimatedPrice"`
	EstimatedPriceUSD decimal.Decimal                 `json:"estimatedPriceUSD"`
	CurrentRate       float64                         `json:"currentRate"`
	History           []NormalizedProcurementResponse `json:"history"`
	RecordCount       int                             `json:"recordCount"`
	GeneratedAt       time.Time                       `json:"generatedAt"`
}

// ToEstimationResponse converts a domain.Estimation to an EstimationResponse DTO.
func ToEstimationResponse(est *domain.Estimation) EstimationResponse {
	history := make([]NormalizedProcurementResponse, len(est.History))
	for i, row := range est.History {
		history[i] = NormalizedProcurementResponse{
			Year:            row.Year,
			OriginalPrice:   row.OriginalPrice,
			RateAtPurchase:  row.RateAtPurchase,
			NormalizedPrice: row.NormalizedPrice,
		}
	}
	return EstimationResponse{
		ProductName:       est.ProductName,
		EstimatedPrice:    est.EstimatedPrice,
		EstimatedPriceUSD: est.EstimatedPriceUSD,
		CurrentRate:       est.CurrentRate,
		History:           history,
		RecordCount:       est.RecordCount,
		GeneratedAt:       est.GeneratedAt,
	}
}

// EstimationRecordResponse defines the API response for a saved estimation.
type EstimationRecordResponse struct {
	EstimationID   string          `json:"estimationID"`
	ProductName    string          `json:"productName"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	Rate           float64         `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToEstimationRecordResponse converts a domain.EstimationRecord to an EstimationRecordResponse DTO.
func ToEstimationRecordResponse(record *domain.EstimationRecord) EstimationRecordResponse {
	return EstimationRecordResponse{
		EstimationID:   record.EstimationID,
		ProductName:    record.ProductName,
		EstimatedPrice: record.EstimatedPrice,
		Rate:           record.Rate,
		CreatedAt:      record.CreatedAt,
		CreatedBy:      record.CreatedBy,
	}
}

// ToListEstimationRecordResponse converts a slice of records to response DTOs.
func ToListEstimationRecordResponse(records []domain.EstimationRecord) []EstimationRecordResponse {
	responses := make([]EstimationRecordResponse, len(records))
	for i := range records {
		responses[i] = ToEstimationRecordResponse(&records[i])
	}
	return responses
}
