package models

import "time"

// RateRecord is the database row for the current USD->IDR rate. A single row
// lives under the fixed key "jisdor".
type RateRecord struct {
	RateKey   string    `json:"rateKey"` // Primary Key, always "jisdor"
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// HistoricalRateRecord is the database row for a rate on one calendar date.
type HistoricalRateRecord struct {
	RateDate  string    `json:"rateDate"` // Primary Key, YYYY-MM-DD
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updatedAt"`
}
