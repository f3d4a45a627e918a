package mapping

import (
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/ecclesiahq/church_ledger_app/internal/models"
)

// ToModelChurch converts a domain Church to a model Church
func ToModelChurch(d domain.Church) models.Church {
	return models.Church{
		ChurchID:    d.ChurchID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChurch converts a model Church to a domain Church
func ToDomainChurch(m models.Church) domain.Church {
	return domain.Church{
		ChurchID:    m.ChurchID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChurchSlice converts a slice of model Churches to domain
func ToDomainChurchSlice(ms []models.Church) []domain.Church {
	ds := make([]domain.Church, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChurch(m)
	}
	return ds
}

// ToModelUserChurch converts a domain membership to a model membership. The
// user name lives on the users table, not the join row.
func ToModelUserChurch(d domain.UserChurch) models.UserChurch {
	return models.UserChurch{
		UserID:   d.UserID,
		ChurchID: d.ChurchID,
		Role:     models.ChurchRole(d.Role),
		JoinedAt: d.JoinedAt,
	}
}

// ToDomainUserChurch converts a model membership to a domain membership,
// attaching the joined user name.
func ToDomainUserChurch(m models.UserChurch, userName string) domain.UserChurch {
	return domain.UserChurch{
		UserID:   m.UserID,
		UserName: userName,
		ChurchID: m.ChurchID,
		Role:     domain.ChurchRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
