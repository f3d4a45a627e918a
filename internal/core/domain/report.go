package domain

import "github.com/shopspring/decimal"

// PeriodReport aggregates obligations and recurring projections over a date
// range. Recurring amounts are re-derived from their definitions at read
// time, never stored pre-expanded.
type PeriodReport struct {
	TotalReceivable decimal.Decimal     `json:"totalReceivable"`
	TotalPaid       decimal.Decimal     `json:"totalPaid"`
	TotalOpen       decimal.Decimal     `json:"totalOpen"`
	TotalOverdue    decimal.Decimal     `json:"totalOverdue"` // Subset of TotalOpen where due date already passed
	ByCounterparty  []CounterpartyTotal `json:"byCounterparty"`
	ByMonth         []MonthlyTotal      `json:"byMonth"` // Chronological
}

// CounterpartyTotal sums the per-record contributions of one counterparty.
type CounterpartyTotal struct {
	CounterpartyID string          `json:"counterpartyID"`
	Total          decimal.Decimal `json:"total"`
	Paid           decimal.Decimal `json:"paid"`
	Open           decimal.Decimal `json:"open"`
}

// MonthlyTotal is one bucket of the month breakdown. A recurring definition
// contributes its amount to every month of its span, so one definition can
// appear in several buckets.
type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
}
