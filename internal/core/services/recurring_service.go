package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

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
	ErrDueDayOutOfRange  = errors.New("due day must be between 1 and 31")
	ErrDefinitionExpired = errors.New("recurring definition is inactive or past its end date")
)

// recurringService manages recurring definitions. A definition eagerly
// materializes exactly one occurrence at creation; renewals are explicit and
// reports project the rest virtually.
type recurringService struct {
	recurringRepo  portsrepo.RecurringRepositoryFacade
	obligationRepo portsrepo.ObligationRepositoryFacade
	churchSvc      portssvc.ChurchSvcFacade
	now            Clock
}

// NewRecurringService creates a new RecurringService.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, obligationRepo portsrepo.ObligationRepositoryFacade, churchSvc portssvc.ChurchSvcFacade, clock Clock) portssvc.RecurringSvcFacade {
	return &recurringService{
		recurringRepo:  recurringRepo,
		obligationRepo: obligationRepo,
		churchSvc:      churchSvc,
		now:            orSystemClock(clock),
	}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// CreateRecurring persists a definition together with its first occurrence.
// The occurrence lands on the definition's DueDay in the current month, or
// the next month when that day has already passed.
func (s *recurringService) CreateRecurring(ctx context.Context, churchID string, req dto.CreateRecurringRequest, userID string) (*domain.RecurringDefinition, *domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateRecurring", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.DueDay < 1 || req.DueDay > 31 {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDueDayOutOfRange)
	}
	if req.StartDate.IsZero() {
		return nil, nil, fmt.Errorf("%w: start date is required", apperrors.ErrValidation)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	def := domain.RecurringDefinition{
		RecurringDefID: uuid.NewString(),
		ChurchID:       churchID,
		CounterpartyID: req.CounterpartyID,
		Amount:         req.Amount,
		Category:       req.Category,
		DueDay:         req.DueDay,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsPayable:      req.IsPayable,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	occurrence := s.buildOccurrence(def, req.Description, def.NextOccurrence(s.now()), userID, now)

	if err := s.recurringRepo.SaveDefinitionWithOccurrence(ctx, def, occurrence); err != nil {
		logger.Error("Failed to save recurring definition", slog.String("error", err.Error()), slog.String("church_id", churchID))
		return nil, nil, fmt.Errorf("failed to save recurring definition: %w", err)
	}

	logger.Info("Recurring definition created", slog.String("recurring_def_id", def.RecurringDefID), slog.String("due", occurrence.DueDate.Format("2006-01-02")))
	return &def, &occurrence, nil
}

// Renew materializes the next occurrence for an existing definition using
// the same roll-to-next-month rule as creation.
func (s *recurringService) Renew(ctx context.Context, churchID, recurringDefID, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for Renew", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return nil, err
	}

	def, err := s.recurringRepo.FindDefinitionByID(ctx, churchID, recurringDefID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", recurringDefID, err)
	}

	today := s.now()
	dueDate := def.NextOccurrence(today)
	if !def.IsActive || (def.EndDate != nil && dueDate.After(*def.EndDate)) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrDefinitionExpired)
	}

	now := today.UTC()
	occurrence := s.buildOccurrence(*def, "", dueDate, userID, now)
	if err := s.obligationRepo.SaveObligation(ctx, occurrence); err != nil {
		logger.Error("Failed to save renewal occurrence", slog.String("error", err.Error()), slog.String("recurring_def_id", recurringDefID))
		return nil, fmt.Errorf("failed to save renewal: %w", err)
	}

	logger.Info("Recurring occurrence renewed", slog.String("recurring_def_id", recurringDefID), slog.String("due", occurrence.DueDate.Format("2006-01-02")))
	return &occurrence, nil
}

// Deactivate stops a definition from producing occurrences or projections.
func (s *recurringService) Deactivate(ctx context.Context, churchID, recurringDefID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for Deactivate", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("error", err.Error()))
		return err
	}

	def, err := s.recurringRepo.FindDefinitionByID(ctx, churchID, recurringDefID)
	if err != nil {
		return fmt.Errorf("failed to find recurring definition %s: %w", recurringDefID, err)
	}
	if !def.IsActive {
		return nil // already inactive, nothing to do
	}

	now := s.now().UTC()
	def.IsActive = false
	def.LastUpdatedAt = now
	def.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateDefinition(ctx, *def); err != nil {
		logger.Error("Failed to deactivate recurring definition", slog.String("error", err.Error()), slog.String("recurring_def_id", recurringDefID))
		return fmt.Errorf("failed to deactivate recurring definition: %w", err)
	}

	logger.Info("Recurring definition deactivated", slog.String("recurring_def_id", recurringDefID))
	return nil
}

// GetDefinitionByID retrieves one definition.
func (s *recurringService) GetDefinitionByID(ctx context.Context, churchID, recurringDefID, userID string) (*domain.RecurringDefinition, error) {
	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	def, err := s.recurringRepo.FindDefinitionByID(ctx, churchID, recurringDefID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", recurringDefID, err)
	}
	return def, nil
}

// ListDefinitions retrieves a church's definitions.
func (s *recurringService) ListDefinitions(ctx context.Context, churchID, userID string, activeOnly bool) (*dto.ListRecurringResponse, error) {
	if err := s.churchSvc.AuthorizeUserAction(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	defs, err := s.recurringRepo.ListDefinitions(ctx, churchID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recurring definitions: %w", err)
	}
	resp := &dto.ListRecurringResponse{Definitions: make([]dto.RecurringDefinitionResponse, len(defs))}
	for i := range defs {
		resp.Definitions[i] = dto.ToRecurringDefinitionResponse(&defs[i])
	}
	return resp, nil
}

// buildOccurrence materializes one obligation from a definition.
func (s *recurringService) buildOccurrence(def domain.RecurringDefinition, description string, dueDate time.Time, userID string, at time.Time) domain.Obligation {
	if description == "" {
		description = fmt.Sprintf("%s (%s)", def.Category, dueDate.Format("2006-01"))
	}
	defID := def.RecurringDefID
	return domain.Obligation{
		ObligationID:   uuid.NewString(),
		ChurchID:       def.ChurchID,
		CounterpartyID: def.CounterpartyID,
		Amount:         def.Amount,
		DueDate:        dueDate,
		PaymentType:    domain.PaymentRecurring,
		Category:       def.Category,
		RecurringDefID: &defID,
		Description:    description,
		IsPayable:      def.IsPayable,
		AuditFields: domain.AuditFields{
			CreatedAt:     at,
			CreatedBy:     userID,
			LastUpdatedAt: at,
			LastUpdatedBy: userID,
		},
	}
}
