package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringDefinition is the template for a periodic obligation (e.g. a
// monthly contribution or rent). Creating a definition materializes exactly
// one concrete occurrence; later occurrences are created by explicit renewal.
// Reports project the remaining occurrences virtually, they are never
// persisted ahead of time.
type RecurringDefinition struct {
	RecurringDefID string          `json:"recurringDefID"` // Primary key (UUID)
	ChurchID       string          `json:"churchID"`       // Tenant (Not Null)
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	Amount         decimal.Decimal `json:"amount"` // Strictly positive
	Category       string          `json:"category"`
	DueDay         int             `json:"dueDay"` // 1..31, clamped to shorter months
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	IsPayable      bool            `json:"isPayable"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// NextOccurrence returns the next due date on or after today: the DueDay of
// the current month, rolled one calendar month forward when that day has
// already passed. The same rule drives both the eagerly created first
// occurrence and manual renewals.
func (r RecurringDefinition) NextOccurrence(today time.Time) time.Time {
	candidate := dateWithDay(today.Year(), today.Month(), r.DueDay, today.Location())
	if candidate.Before(truncateToDay(today)) {
		// Advance by year/month pair, not AddDate: adding a month to Jan 30
		// normalizes through "Feb 30" into March and skips a billing month.
		candidate = dateWithDay(today.Year(), today.Month()+1, r.DueDay, today.Location())
	}
	return candidate
}

// FirstDueDate is the anchor due date derived from StartDate: the DueDay in
// the start month, or the following month when the start is already past it.
func (r RecurringDefinition) FirstDueDate() time.Time {
	return r.NextOccurrence(r.StartDate)
}

// MonthsBetween counts billable calendar months between from and end,
// inclusive of both boundary months, floored at zero.
func MonthsBetween(from, end time.Time) int {
	n := (end.Year()-from.Year())*12 + int(end.Month()) - int(from.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}

// ProratedTotal projects the definition's contribution to a reporting window
// [start, end]: amount times the number of billable months from the later of
// the anchor due date and the window start. Used only for reporting.
func (r RecurringDefinition) ProratedTotal(start, end time.Time) decimal.Decimal {
	months := r.BillableMonths(start, end)
	return r.Amount.Mul(decimal.NewFromInt(int64(months)))
}

// BillableMonths returns the count of months the definition spans inside the
// window, honoring EndDate and IsActive.
func (r RecurringDefinition) BillableMonths(start, end time.Time) int {
	if !r.IsActive {
		return 0
	}
	from := r.FirstDueDate()
	if from.Before(start) {
		from = start
	}
	to := end
	if r.EndDate != nil && r.EndDate.Before(to) {
		to = *r.EndDate
	}
	return MonthsBetween(from, to)
}

// AddMonthsClamped advances t by whole calendar months, clamping the day to
// the target month's length so a month-end anchor never spills into the month
// after next. The result is truncated to day granularity.
func AddMonthsClamped(t time.Time, months int) time.Time {
	return dateWithDay(t.Year(), t.Month()+time.Month(months), t.Day(), t.Location())
}

// dateWithDay builds a date clamping day to the month's length, so DueDay 31
// lands on Feb 28 rather than spilling into March.
func dateWithDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
