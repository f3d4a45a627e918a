package dto

import (
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
)

// ReportParams bounds the reporting window and optionally narrows it to one
// counterparty.
type ReportParams struct {
	Start          time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End            time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
	CounterpartyID *string   `form:"counterpartyID"`
}

// ReportResponse is the aggregate output consumed by report screens and
// exports.
type ReportResponse struct {
	Start time.Time           `json:"start"`
	End   time.Time           `json:"end"`
	Data  domain.PeriodReport `json:"data"`
}
