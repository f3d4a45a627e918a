package domain_test

import (
	"testing"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestObligation_Status(t *testing.T) {
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	paidOn := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		obligation domain.Obligation
		now        time.Time
		want       domain.ObligationStatus
	}{
		{
			name:       "open before due date",
			obligation: domain.Obligation{DueDate: due},
			now:        time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
			want:       domain.StatusOpen,
		},
		{
			name:       "still open on the due date itself",
			obligation: domain.Obligation{DueDate: due},
			now:        time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC),
			want:       domain.StatusOpen,
		},
		{
			name:       "overdue the day after",
			obligation: domain.Obligation{DueDate: due},
			now:        time.Date(2026, time.March, 11, 0, 0, 1, 0, time.UTC),
			want:       domain.StatusOverdue,
		},
		{
			name:       "paid wins regardless of due date",
			obligation: domain.Obligation{DueDate: due, PaymentDate: &paidOn},
			now:        time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			want:       domain.StatusPaid,
		},
		{
			name:       "overdue in a later year",
			obligation: domain.Obligation{DueDate: due},
			now:        time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC),
			want:       domain.StatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.obligation.Status(tt.now))
		})
	}
}

// OVERDUE is derived, never stored: the same record flips back to OPEN when
// observed at an earlier instant.
func TestObligation_StatusIsDerivedNotStored(t *testing.T) {
	o := domain.Obligation{
		Amount:  decimal.NewFromInt(100),
		DueDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}

	after := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.StatusOverdue, o.Status(after))
	assert.Equal(t, domain.StatusOpen, o.Status(before))
}

func TestObligation_IsSettled(t *testing.T) {
	paidOn := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.False(t, domain.Obligation{}.IsSettled())
	assert.True(t, domain.Obligation{PaymentDate: &paidOn}.IsSettled())
}
