package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadySettled   = errors.New("obligation is already settled")
	ErrInstallmentCount = errors.New("installment count must be at least 2")
	ErrPaymentInFuture  = errors.New("payment date cannot be in the future")
	ErrCancelPaidRecord = errors.New("settled obligations cannot be cancelled")
	ErrEmptyBatch       = errors.New("batch settlement requires at least one obligation id")
)

// obligationService drives the receivable/payable lifecycle: creation,
// installment splitting, settlement and cancellation.
type obligationService struct {
	obligationRepo portsrepo.ObligationRepositoryFacade
	accountSvc     portssvc.AccountSvcFacade
	churchSvc      portssvc.ChurchSvcFacade
	now            Clock
}

// NewObligationService creates a new ObligationService.
func NewObligationService(obligationRepo portsrepo.ObligationRepositoryFacade, accountSvc portssvc.AccountSvcFacade, churchSvc portssvc.ChurchSvcFacade, clock Clock) portssvc.ObligationSvcFacade {
	return &obligationService{
		obligationRepo: obligationRepo,
		accountSvc:     accountSvc,
		churchSvc:      churchSvc,
		now:            orSystemClock(clock),
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

// CreateObligation records a single direct-entry obligation. No journal
// entry is posted at creation; the accounting movement happens on settlement.
func (s *obligationService) CreateObligation(ctx context.Context, churchID string, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateObligation", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	obligation := domain.Obligation{
		ObligationID:   uuid.NewString(),
		ChurchID:       churchID,
		CounterpartyID: req.CounterpartyID,
		Amount:         req.Amount,
		DueDate:        req.DueDate,
		PaymentType:    domain.PaymentSingle,
		Category:       req.Category,
		Description:    req.Description,
		IsPayable:      req.IsPayable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		logger.Error("Failed to save obligation", slog.String("error", err.Error()), slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to save obligation: %w", err)
	}

	logger.Info("Obligation created", slog.String("obligation_id", obligation.ObligationID), slog.String("church_id", churchID))
	return &obligation, nil
}

// SplitIntoInstallments splits one charge into count equal obligations due
// one calendar month apart. The per-installment amount is the total divided
// by count rounded to cents; the last installment absorbs the remainder so
// the installments always sum to the requested total exactly.
func (s *obligationService) SplitIntoInstallments(ctx context.Context, churchID string, req dto.SplitInstallmentsRequest, userID string) ([]domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for SplitIntoInstallments", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Count < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInstallmentCount)
	}
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if req.FirstDueDate.IsZero() {
		return nil, fmt.Errorf("%w: first due date is required", apperrors.ErrValidation)
	}

	perInstallment := req.TotalAmount.Div(decimal.NewFromInt(int64(req.Count))).Round(2)
	lastInstallment := req.TotalAmount.Sub(perInstallment.Mul(decimal.NewFromInt(int64(req.Count - 1))))

	now := s.now().UTC()
	batchID := uuid.NewString()
	count := req.Count

	obligations := make([]domain.Obligation, count)
	for i := 1; i <= count; i++ {
		amount := perInstallment
		if i == count {
			amount = lastInstallment
		}
		index := i
		obligations[i-1] = domain.Obligation{
			ObligationID:     uuid.NewString(),
			ChurchID:         churchID,
			CounterpartyID:   req.CounterpartyID,
			Amount:           amount,
			DueDate:          domain.AddMonthsClamped(req.FirstDueDate, i-1),
			PaymentType:      domain.PaymentInstallment,
			Category:         req.Category,
			InstallmentIndex: &index,
			InstallmentCount: &count,
			BatchID:          &batchID,
			Description:      fmt.Sprintf("%s (%d/%d)", req.Description, i, count),
			IsPayable:        req.IsPayable,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.obligationRepo.SaveObligations(ctx, obligations); err != nil {
		logger.Error("Failed to save installment batch", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		return nil, fmt.Errorf("failed to save installments: %w", err)
	}

	logger.Info("Installment batch created", slog.String("batch_id", batchID), slog.Int("count", count), slog.String("church_id", churchID))
	return obligations, nil
}

// Settle flips one obligation to paid and posts the paired journal entry.
// The status flip and the posting are one database transaction: a failed
// posting fails the settlement, so no paid record exists without its trail.
func (s *obligationService) Settle(ctx context.Context, churchID, obligationID string, req dto.SettleRequest, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for Settle", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	return s.settleOne(ctx, churchID, obligationID, req, userID)
}

// settleOne performs the settlement without re-checking authorization; used
// by both Settle and SettleMany.
func (s *obligationService) settleOne(ctx context.Context, churchID, obligationID string, req dto.SettleRequest, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	obligation, err := s.obligationRepo.FindObligationByID(ctx, churchID, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	if obligation.IsSettled() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadySettled)
	}

	now := s.now().UTC()
	if req.PaymentDate.After(now) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentInFuture)
	}

	paidAmount := obligation.Amount
	if req.PaidAmount != nil {
		// Partial or over payment is recorded as-is.
		if req.PaidAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: paid amount must be positive", apperrors.ErrValidation)
		}
		paidAmount = *req.PaidAmount
	}

	paymentDate := req.PaymentDate
	settled := *obligation
	settled.PaymentDate = &paymentDate
	settled.PaidAmount = &paidAmount
	settled.LastUpdatedAt = now
	settled.LastUpdatedBy = userID

	entry := buildSettlementEntry(settled, s.accountSvc, paymentDate, paidAmount, req.ReceivedVia, userID, now)

	if err := s.obligationRepo.SettleWithEntry(ctx, settled, entry); err != nil {
		logger.Error("Settlement failed", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, fmt.Errorf("settlement of %s failed: %w", obligationID, err)
	}

	logger.Info("Obligation settled", slog.String("obligation_id", obligationID), slog.String("entry_id", entry.EntryID))
	return &settled, nil
}

// SettleMany applies the same settlement to a set of ids. The batch is a
// client-side loop over the store and is deliberately not atomic: each id
// gets its own outcome and a failure partway through never hides the ids
// that already succeeded.
func (s *obligationService) SettleMany(ctx context.Context, churchID string, req dto.SettleManyRequest, userID string) (*dto.SettleManyResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for SettleMany", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}
	if len(req.ObligationIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyBatch)
	}

	resp := &dto.SettleManyResponse{Outcomes: make([]dto.BatchOutcome, 0, len(req.ObligationIDs))}
	settleReq := dto.SettleRequest{PaymentDate: req.PaymentDate, ReceivedVia: req.ReceivedVia}

	for _, id := range req.ObligationIDs {
		if _, err := s.settleOne(ctx, churchID, id, settleReq, userID); err != nil {
			resp.Outcomes = append(resp.Outcomes, dto.BatchOutcome{ObligationID: id, Settled: false, Error: err.Error()})
			resp.Failed++
			continue
		}
		resp.Outcomes = append(resp.Outcomes, dto.BatchOutcome{ObligationID: id, Settled: true})
		resp.Succeeded++
	}

	logger.Info("Batch settlement finished", slog.Int("succeeded", resp.Succeeded), slog.Int("failed", resp.Failed))
	return resp, nil
}

// Cancel deletes an unsettled obligation. Cancelling any installment removes
// the entire sibling batch; settled siblings are left in place so the journal
// trail they produced stays consistent.
func (s *obligationService) Cancel(ctx context.Context, churchID, obligationID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for Cancel", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return err
	}

	obligation, err := s.obligationRepo.FindObligationByID(ctx, churchID, obligationID)
	if err != nil {
		return fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	if obligation.IsSettled() {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCancelPaidRecord)
	}

	if obligation.PaymentType == domain.PaymentInstallment && obligation.BatchID != nil {
		removed, err := s.obligationRepo.DeleteObligationsByBatch(ctx, churchID, *obligation.BatchID)
		if err != nil {
			logger.Error("Failed to cancel installment batch", slog.String("error", err.Error()), slog.String("batch_id", *obligation.BatchID))
			return fmt.Errorf("failed to cancel installment batch: %w", err)
		}
		logger.Info("Installment batch cancelled", slog.String("batch_id", *obligation.BatchID), slog.Int64("removed", removed))
		return nil
	}

	if err := s.obligationRepo.DeleteObligation(ctx, churchID, obligationID); err != nil {
		logger.Error("Failed to cancel obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return fmt.Errorf("failed to cancel obligation: %w", err)
	}

	logger.Info("Obligation cancelled", slog.String("obligation_id", obligationID))
	return nil
}

// GetObligationByID retrieves one obligation with its derived status.
func (s *obligationService) GetObligationByID(ctx context.Context, churchID, obligationID, userID string) (*domain.Obligation, error) {
	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	obligation, err := s.obligationRepo.FindObligationByID(ctx, churchID, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

// ListObligations retrieves obligations matching the filter. OPEN vs OVERDUE
// is derived against the clock here, never read from the store.
func (s *obligationService) ListObligations(ctx context.Context, churchID, userID string, params dto.ListObligationsParams) (*dto.ListObligationsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListObligations", "error", err)
		return nil, err
	}

	filter := portsrepo.ObligationFilter{
		CounterpartyID: params.CounterpartyID,
		From:           params.From,
		To:             params.To,
		IsPayable:      params.IsPayable,
	}

	var wantStatus *domain.ObligationStatus
	if params.Status != "" {
		status := domain.ObligationStatus(params.Status)
		switch status {
		case domain.StatusPaid:
			settled := true
			filter.Settled = &settled
		case domain.StatusOpen, domain.StatusOverdue:
			settled := false
			filter.Settled = &settled
			wantStatus = &status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
	}

	obligations, err := s.obligationRepo.ListObligations(ctx, churchID, filter)
	if err != nil {
		logger.Error("Failed to list obligations", "error", err)
		return nil, fmt.Errorf("failed to retrieve obligations: %w", err)
	}

	now := s.now()
	if wantStatus != nil {
		filtered := obligations[:0]
		for _, o := range obligations {
			if o.Status(now) == *wantStatus {
				filtered = append(filtered, o)
			}
		}
		obligations = filtered
	}

	return &dto.ListObligationsResponse{Obligations: dto.ToObligationResponses(obligations, now)}, nil
}
