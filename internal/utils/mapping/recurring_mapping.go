package mapping

import (
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/models"
)

// ToModelRecurringDefinition converts a domain RecurringDefinition to a model
func ToModelRecurringDefinition(d domain.RecurringDefinition) models.RecurringDefinition {
	return models.RecurringDefinition{
		RecurringDefID: d.RecurringDefID,
		ChurchID:       d.ChurchID,
		CounterpartyID: d.CounterpartyID,
		Amount:         d.Amount,
		Category:       d.Category,
		DueDay:         d.DueDay,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		IsPayable:      d.IsPayable,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurringDefinition converts a model RecurringDefinition to a domain
func ToDomainRecurringDefinition(m models.RecurringDefinition) domain.RecurringDefinition {
	return domain.RecurringDefinition{
		RecurringDefID: m.RecurringDefID,
		ChurchID:       m.ChurchID,
		CounterpartyID: m.CounterpartyID,
		Amount:         m.Amount,
		Category:       m.Category,
		DueDay:         m.DueDay,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsPayable:      m.IsPayable,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecurringDefinitionSlice converts model definitions to domain
func ToDomainRecurringDefinitionSlice(ms []models.RecurringDefinition) []domain.RecurringDefinition {
	ds := make([]domain.RecurringDefinition, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecurringDefinition(m)
	}
	return ds
}
