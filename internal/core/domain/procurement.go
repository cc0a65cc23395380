package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcurementRecord is one historical purchase of a product. The estimation
// engine reads these; it never mutates them.
type ProcurementRecord struct {
	ProcurementID string          `json:"procurementID"`
	ProductName   string          `json:"productName"`
	VendorName    string          `json:"vendorName,omitempty"`
	TotalPrice    decimal.Decimal `json:"totalPrice"` // IDR at ReleaseDate's rate
	ReleaseDate   time.Time       `json:"releaseDate"`
}

// NormalizedProcurement is one procurement record restated at the current
// exchange rate.
type NormalizedProcurement struct {
	Year            int             `json:"year"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	RateAtPurchase  float64         `json:"rateAtPurchase"`
	NormalizedPrice decimal.Decimal `json:"normalizedPrice"`
}

// Estimation is a computed present-day cost estimate for a product.
type Estimation struct {
	ProductName       string                  `json:"productName"`
	EstimatedPrice    decimal.Decimal         `json:"estimatedPrice"`    // IDR
	EstimatedPriceUSD decimal.Decimal         `json:"estimatedPriceUSD"` // 2 decimal places
	CurrentRate       float64                 `json:"currentRate"`
	History           []NormalizedProcurement `json:"history"`
	RecordCount       int                     `json:"recordCount"`
	GeneratedAt       time.Time               `json:"generatedAt"`
}

// EstimationRecord is a saved estimation result (riwayat).
type EstimationRecord struct {
	EstimationID   string          `json:"estimationID"`
	ProductName    string          `json:"productName"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	Rate           float64         `json:"rate"`
	AuditFields
}
