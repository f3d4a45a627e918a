package mapping

import (
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID:     d.ObligationID,
		ChurchID:         d.ChurchID,
		CounterpartyID:   d.CounterpartyID,
		Amount:           d.Amount,
		DueDate:          d.DueDate,
		PaymentDate:      d.PaymentDate,
		PaidAmount:       d.PaidAmount,
		PaymentType:      models.PaymentType(d.PaymentType),
		Category:         d.Category,
		InstallmentIndex: d.InstallmentIndex,
		InstallmentCount: d.InstallmentCount,
		BatchID:          d.BatchID,
		RecurringDefID:   d.RecurringDefID,
		Description:      d.Description,
		IsPayable:        d.IsPayable,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainObligation converts a model Obligation to a domain Obligation
func ToDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID:     m.ObligationID,
		ChurchID:         m.ChurchID,
		CounterpartyID:   m.CounterpartyID,
		Amount:           m.Amount,
		DueDate:          m.DueDate,
		PaymentDate:      m.PaymentDate,
		PaidAmount:       m.PaidAmount,
		PaymentType:      domain.PaymentType(m.PaymentType),
		Category:         m.Category,
		InstallmentIndex: m.InstallmentIndex,
		InstallmentCount: m.InstallmentCount,
		BatchID:          m.BatchID,
		RecurringDefID:   m.RecurringDefID,
		Description:      m.Description,
		IsPayable:        m.IsPayable,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainObligationSlice converts a slice of model Obligations to domain
func ToDomainObligationSlice(ms []models.Obligation) []domain.Obligation {
	ds := make([]domain.Obligation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainObligation(m)
	}
	return ds
}
