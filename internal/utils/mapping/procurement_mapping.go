package mapping

import (
	"github.com/siperka/siperka_backend/internal/core/domain"
	"github.com/siperka/siperka_backend/internal/models"
)

// ToDomainProcurementRecord converts a database ProcurementRecord to its domain form.
func ToDomainProcurementRecord(m models.ProcurementRecord) domain.ProcurementRecord {
	return domain.ProcurementRecord{
		ProcurementID: m.ProcurementID,
		ProductName:   m.ProductName,
		VendorName:    m.VendorName,
		TotalPrice:    m.TotalPrice,
		ReleaseDate:   m.ReleaseDate,
	}
}

// ToModelEstimationRecord converts a domain EstimationRecord to its database model.
func ToModelEstimationRecord(d domain.EstimationRecord) models.EstimationRecord {
	return models.EstimationRecord{
		EstimationID:   d.EstimationID,
		ProductName:    d.ProductName,
		EstimatedPrice: d.EstimatedPrice,
		Rate:           d.Rate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainEstimationRecord converts a database EstimationRecord to its domain form.
func ToDomainEstimationRecord(m models.EstimationRecord) domain.EstimationRecord {
	return domain.EstimationRecord{
		EstimationID:   m.EstimationID,
		ProductName:    m.ProductName,
		EstimatedPrice: m.EstimatedPrice,
		Rate:           m.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
