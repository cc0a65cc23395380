package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcurementRecord is the database row for one historical purchase.
type ProcurementRecord struct {
	ProcurementID string          `json:"procurementID"` // Primary Key (UUID)
	ProductName   string          `json:"productName"`
	VendorName    string          `json:"vendorName"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	ReleaseDate   time.Time       `json:"releaseDate"`
}

// EstimationRecord is the database row for a saved estimation result.
type EstimationRecord struct {
	EstimationID   string          `json:"estimationID"` // Primary Key (UUID)
	ProductName    string          `json:"productName"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	Rate           float64         `json:"rate"`
	AuditFields
}
