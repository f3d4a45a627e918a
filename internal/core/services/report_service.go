package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportService aggregates receivables and recurring projections over a
// reporting window. Recurring contributions are re-derived from their
// definitions at read time; materialized recurring rows only feed the paid
// and outstanding columns, so one charge is never counted twice.
type reportService struct {
	obligationRepo portsrepo.ObligationRepositoryFacade
	recurringRepo  portsrepo.RecurringRepositoryFacade
	churchSvc      portssvc.ChurchSvcFacade
	now            Clock
}

// NewReportService creates a new ReportService.
func NewReportService(obligationRepo portsrepo.ObligationRepositoryFacade, recurringRepo portsrepo.RecurringRepositoryFacade, churchSvc portssvc.ChurchSvcFacade, clock Clock) portssvc.ReportSvcFacade {
	return &reportService{
		obligationRepo: obligationRepo,
		recurringRepo:  recurringRepo,
		churchSvc:      churchSvc,
		now:            orSystemClock(clock),
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// monthKey orders monthly buckets chronologically.
type monthKey struct {
	year  int
	month time.Month
}

// Report computes period totals for a church's receivables: literal amounts
// for single and installment rows due inside [start, end], prorated
// projections for recurring definitions, plus per-counterparty sums and a
// chronological month breakdown.
func (s *reportService) Report(ctx context.Context, churchID, userID string, params dto.ReportParams) (*dto.ReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for Report", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	if params.End.Before(params.Start) {
		return nil, fmt.Errorf("%w: report end precedes start", apperrors.ErrValidation)
	}

	receivable := false
	filter := portsrepo.ObligationFilter{
		CounterpartyID: params.CounterpartyID,
		From:           &params.Start,
		To:             &params.End,
		IsPayable:      &receivable,
	}
	obligations, err := s.obligationRepo.ListObligations(ctx, churchID, filter)
	if err != nil {
		logger.Error("Failed to list obligations for report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve obligations for report: %w", err)
	}

	defs, err := s.recurringRepo.ListDefinitions(ctx, churchID, true)
	if err != nil {
		logger.Error("Failed to list recurring definitions for report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve recurring definitions for report: %w", err)
	}

	now := s.now()
	report := domain.PeriodReport{
		TotalReceivable: decimal.Zero,
		TotalPaid:       decimal.Zero,
		TotalOpen:       decimal.Zero,
		TotalOverdue:    decimal.Zero,
	}
	byCounterparty := map[string]*domain.CounterpartyTotal{}
	byMonth := map[monthKey]*domain.MonthlyTotal{}

	for _, o := range obligations {
		cp := counterpartyBucket(byCounterparty, o.CounterpartyID)
		bucket := monthBucket(byMonth, o.DueDate)

		// Recurring rows are projected from their definition below; counting
		// their face amount here would double the charge.
		if o.PaymentType != domain.PaymentRecurring {
			report.TotalReceivable = report.TotalReceivable.Add(o.Amount)
			bucket.Total = bucket.Total.Add(o.Amount)
			if cp != nil {
				cp.Total = cp.Total.Add(o.Amount)
			}
		}

		switch o.Status(now) {
		case domain.StatusPaid:
			paid := o.Amount
			if o.PaidAmount != nil {
				paid = *o.PaidAmount
			}
			report.TotalPaid = report.TotalPaid.Add(paid)
			bucket.Paid = bucket.Paid.Add(paid)
			if cp != nil {
				cp.Paid = cp.Paid.Add(paid)
			}
		case domain.StatusOverdue:
			report.TotalOpen = report.TotalOpen.Add(o.Amount)
			report.TotalOverdue = report.TotalOverdue.Add(o.Amount)
			if cp != nil {
				cp.Open = cp.Open.Add(o.Amount)
			}
		default:
			report.TotalOpen = report.TotalOpen.Add(o.Amount)
			if cp != nil {
				cp.Open = cp.Open.Add(o.Amount)
			}
		}
	}

	for _, def := range defs {
		if def.IsPayable {
			continue
		}
		if params.CounterpartyID != nil && (def.CounterpartyID == nil || *def.CounterpartyID != *params.CounterpartyID) {
			continue
		}
		projected := def.ProratedTotal(params.Start, params.End)
		if projected.IsZero() {
			continue
		}
		report.TotalReceivable = report.TotalReceivable.Add(projected)
		if cp := counterpartyBucket(byCounterparty, def.CounterpartyID); cp != nil {
			cp.Total = cp.Total.Add(projected)
		}
		// One definition lands in every month bucket of its span.
		for _, key := range projectionMonths(def, params.Start, params.End) {
			bucket := monthBucket(byMonth, time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC))
			bucket.Total = bucket.Total.Add(def.Amount)
		}
	}

	report.ByCounterparty = sortedCounterpartyTotals(byCounterparty)
	report.ByMonth = sortedMonthlyTotals(byMonth)

	logger.Info("Report computed",
		slog.String("church_id", churchID),
		slog.Int("obligations", len(obligations)),
		slog.Int("definitions", len(defs)))
	return &dto.ReportResponse{Start: params.Start, End: params.End, Data: report}, nil
}

// projectionMonths enumerates the calendar months a definition bills inside
// the window, honoring the anchor due date and an optional end date.
func projectionMonths(def domain.RecurringDefinition, start, end time.Time) []monthKey {
	from := def.FirstDueDate()
	if from.Before(start) {
		from = start
	}
	to := end
	if def.EndDate != nil && def.EndDate.Before(to) {
		to = *def.EndDate
	}

	var keys []monthKey
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		keys = append(keys, monthKey{year: cursor.Year(), month: cursor.Month()})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return keys
}

func counterpartyBucket(m map[string]*domain.CounterpartyTotal, counterpartyID *string) *domain.CounterpartyTotal {
	if counterpartyID == nil || *counterpartyID == "" {
		return nil
	}
	if bucket, ok := m[*counterpartyID]; ok {
		return bucket
	}
	bucket := &domain.CounterpartyTotal{
		CounterpartyID: *counterpartyID,
		Total:          decimal.Zero,
		Paid:           decimal.Zero,
		Open:           decimal.Zero,
	}
	m[*counterpartyID] = bucket
	return bucket
}

func monthBucket(m map[monthKey]*domain.MonthlyTotal, at time.Time) *domain.MonthlyTotal {
	key := monthKey{year: at.Year(), month: at.Month()}
	if bucket, ok := m[key]; ok {
		return bucket
	}
	bucket := &domain.MonthlyTotal{
		Year:  key.year,
		Month: int(key.month),
		Total: decimal.Zero,
		Paid:  decimal.Zero,
	}
	m[key] = bucket
	return bucket
}

func sortedCounterpartyTotals(m map[string]*domain.CounterpartyTotal) []domain.CounterpartyTotal {
	out := make([]domain.CounterpartyTotal, 0, len(m))
	for _, bucket := range m {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CounterpartyID < out[j].CounterpartyID })
	return out
}

func sortedMonthlyTotals(m map[monthKey]*domain.MonthlyTotal) []domain.MonthlyTotal {
	out := make([]domain.MonthlyTotal, 0, len(m))
	for _, bucket := range m {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
