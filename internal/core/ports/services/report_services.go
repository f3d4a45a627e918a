package services

import (
	"context"

	"github.com/ecclesiahq/church_ledger_app/internal/dto"
)

// ReportSvcFacade computes period totals over obligations and recurring
// projections. Recurring contributions are re-derived from definitions at
// read time, never read from pre-expanded rows.
type ReportSvcFacade interface {
	// Report aggregates the window into totals, per-counterparty sums and a
	// chronological month breakdown.
	Report(ctx context.Context, churchID, userID string, params dto.ReportParams) (*dto.ReportResponse, error)
}
