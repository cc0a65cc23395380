package mapping

import (
	"github.com/siperka/siperka_backend/internal/core/domain"
	"github.com/siperka/siperka_backend/internal/models"
)

// ToModelRateRecord converts a domain RateRecord to its database model.
func ToModelRateRecord(d domain.RateRecord) models.RateRecord {
	return models.RateRecord{
		RateKey:   "jisdor",
		Value:     d.Value,
		Source:    string(d.Source),
		UpdatedAt: d.UpdatedAt,
		UpdatedBy: d.UpdatedBy,
	}
}

// ToDomainRateRecord converts a database RateRecord to its domain form.
func ToDomainRateRecord(m models.RateRecord) domain.RateRecord {
	return domain.RateRecord{
		Value:     m.Value,
		Source:    domain.RateSource(m.Source),
		UpdatedAt: m.UpdatedAt,
		UpdatedBy: m.UpdatedBy,
	}
}

// ToModelHistoricalRateRecord converts a domain HistoricalRateRecord to its database model.
func ToModelHistoricalRateRecord(d domain.HistoricalRateRecord) models.HistoricalRateRecord {
	return models.HistoricalRateRecord{
		RateDate:  d.Date,
		Value:     d.Value,
		Source:    string(d.Source),
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainHistoricalRateRecord converts a database HistoricalRateRecord to its domain form.
func ToDomainHistoricalRateRecord(m models.HistoricalRateRecord) domain.HistoricalRateRecord {
	return domain.HistoricalRateRecord{
		Date:      m.RateDate,
		Value:     m.Value,
		Source:    domain.RateSource(m.Source),
		UpdatedAt: m.UpdatedAt,
	}
}
