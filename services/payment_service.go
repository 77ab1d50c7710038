package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fadhlanhapp/volleyleague-backend/metrics"
	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/repository"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// DefaultOverdueGraceDays is how long a payment may stay pending after registration
const DefaultOverdueGraceDays = 30

// PaymentService handles the member payment lifecycle
type PaymentService struct {
	paymentRepo repository.PaymentStore
	memberRepo  repository.MemberDirectory
	metrics     *metrics.Metrics
	graceDays   int
	now         func() time.Time
}

// PaymentServiceOption customizes a PaymentService
type PaymentServiceOption func(*PaymentService)

// WithClock overrides the time source
func WithClock(now func() time.Time) PaymentServiceOption {
	return func(s *PaymentService) { s.now = now }
}

// WithGraceDays sets the reconciliation grace window
func WithGraceDays(days int) PaymentServiceOption {
	return func(s *PaymentService) { s.graceDays = days }
}

// WithMetrics records transitions and sweeps on m
func WithMetrics(m *metrics.Metrics) PaymentServiceOption {
	return func(s *PaymentService) { s.metrics = m }
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentStore, memberRepo repository.MemberDirectory, opts ...PaymentServiceOption) *PaymentService {
	s := &PaymentService{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		graceDays:   DefaultOverdueGraceDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePayment registers a new PENDING obligation for a member and period
func (s *PaymentService) CreatePayment(ctx context.Context, ownerID string, period models.Period, amount *decimal.Decimal, dueDate time.Time) (*models.Payment, error) {
	ownerID = strings.TrimSpace(ownerID)
	now := s.now()

	if err := utils.ValidateRequired(ownerID, "owner id"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePeriod(period.Month, period.Year); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositiveAmount(amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotBefore(dueDate, now, "due date"); err != nil {
		return nil, err
	}

	exists, err := s.memberRepo.MemberExists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}
	if !exists {
		return nil, utils.NewNotFoundError(utils.ErrMemberNotFound)
	}

	taken, err := s.paymentRepo.ExistsForOwnerAndPeriod(ctx, ownerID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if taken {
		return nil, utils.NewConflictError(utils.ErrDuplicatePayment)
	}

	payment := &models.Payment{
		ID:               utils.GenerateID(),
		OwnerID:          ownerID,
		Period:           period,
		Amount:           utils.RoundMoney(*amount),
		DueDate:          utils.StartOfDay(dueDate),
		RegistrationDate: now,
		Status:           models.StatusPending,
		UpdatedAt:        now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError(utils.ErrDuplicatePayment)
		}
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	s.metrics.ObserveTransition(string(models.StatusPending))
	slog.Info("Payment created",
		"payment_id", payment.ID,
		"owner_id", ownerID,
		"period", period.String(),
		"amount", payment.Amount.StringFixed(utils.MoneyScale),
	)
	return payment, nil
}

// UpdateStatus changes a payment's status through the generic path.
// Non-blank notes are appended to the existing notes.
func (s *PaymentService) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, notes string) (*models.Payment, error) {
	if err := utils.ValidateRequired(paymentID, "payment id"); err != nil {
		return nil, err
	}
	if err := validateGenericTarget(status); err != nil {
		return nil, err
	}

	payment, err := s.load(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	previous := payment.Status
	applyStatus(payment, status, notes, s.now())
	if err := s.update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	s.metrics.ObserveTransition(string(status))
	slog.Info("Payment status updated",
		"payment_id", payment.ID,
		"from", previous,
		"to", status,
	)
	return payment, nil
}

// ReplaceNotes overwrites a payment's notes outright
func (s *PaymentService) ReplaceNotes(ctx context.Context, paymentID, notes string) (*models.Payment, error) {
	if err := utils.ValidateRequired(paymentID, "payment id"); err != nil {
		return nil, err
	}

	payment, err := s.load(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment.Notes = strings.TrimSpace(notes)
	payment.UpdatedAt = s.now()
	if err := s.update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to replace payment notes: %w", err)
	}
	return payment, nil
}

// Settle marks a payment as PAID without a receipt
func (s *PaymentService) Settle(ctx context.Context, paymentID string, amount *decimal.Decimal, method string) (*models.Payment, error) {
	return s.settle(ctx, paymentID, amount, method, "")
}

// SettleWithReceipt marks a payment as PAID and records the receipt reference
func (s *PaymentService) SettleWithReceipt(ctx context.Context, paymentID string, amount *decimal.Decimal, method, receiptPath string) (*models.Payment, error) {
	if err := utils.ValidateRequired(receiptPath, "receipt path"); err != nil {
		return nil, err
	}
	return s.settle(ctx, paymentID, amount, method, strings.TrimSpace(receiptPath))
}

func (s *PaymentService) settle(ctx context.Context, paymentID string, amount *decimal.Decimal, method, receiptPath string) (*models.Payment, error) {
	if err := utils.ValidateRequired(paymentID, "payment id"); err != nil {
		return nil, err
	}
	if err := validateSettlement(amount, method); err != nil {
		return nil, err
	}

	payment, err := s.load(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Re-settling a PAID payment is permitted and overwrites the settlement details.
	if payment.IsPaid() {
		slog.Warn("Re-settling an already paid payment",
			"payment_id", payment.ID,
			"previous_amount", payment.Amount.StringFixed(utils.MoneyScale),
			"previous_method", payment.PaymentMethod,
		)
	}

	applySettlement(payment, *amount, strings.TrimSpace(method), receiptPath, s.now())
	if err := s.update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	s.metrics.ObserveTransition(string(models.StatusPaid))
	slog.Info("Payment settled",
		"payment_id", payment.ID,
		"owner_id", payment.OwnerID,
		"amount", payment.Amount.StringFixed(utils.MoneyScale),
		"method", payment.PaymentMethod,
		"with_receipt", payment.ReceiptPath != "",
	)
	return payment, nil
}

// DeletePayment deletes a payment that has not been settled
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID string) error {
	if err := utils.ValidateRequired(paymentID, "payment id"); err != nil {
		return err
	}

	payment, err := s.load(ctx, paymentID)
	if err != nil {
		return err
	}
	if err := checkDeletable(payment); err != nil {
		return err
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError(utils.ErrPaymentNotFound)
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	slog.Info("Payment deleted", "payment_id", paymentID, "status", payment.Status)
	return nil
}

// ReconcileOverduePayments marks stale PENDING payments as OVERDUE.
// Eligibility is anchored on the registration date, not the due date.
// Each payment is committed independently and only while it is still
// PENDING; a failed save is logged and skipped so the rest of the batch
// still runs.
func (s *PaymentService) ReconcileOverduePayments(ctx context.Context) (*models.ReconcileResult, error) {
	started := time.Now()
	now := s.now()
	cutoff := reconcileCutoff(now, s.graceDays)

	stale, err := s.paymentRepo.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending payments: %w", err)
	}

	result := &models.ReconcileResult{Cutoff: cutoff, Selected: len(stale)}
	slog.Info("Overdue reconciliation started", "cutoff", cutoff, "selected", len(stale))

	for i := range stale {
		payment := &stale[i]
		if !isOverdueEligible(payment, cutoff) {
			continue
		}

		applyStatus(payment, models.StatusOverdue, reconcileNote, now)
		err := s.paymentRepo.UpdateFromStatus(ctx, payment, models.StatusPending)
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted or settled after selection; the concurrent write wins.
			result.Skipped++
			slog.Info("Payment changed during reconciliation, skipping", "payment_id", payment.ID)
			continue
		}
		if err != nil {
			result.Failed++
			slog.Error("Failed to mark payment overdue",
				"payment_id", payment.ID,
				"owner_id", payment.OwnerID,
				"error", err,
			)
			continue
		}
		result.Updated++
		s.metrics.ObserveTransition(string(models.StatusOverdue))
	}

	s.metrics.ObserveReconcile(result.Updated, result.Failed, time.Since(started).Seconds())
	slog.Info("Overdue reconciliation finished",
		"selected", result.Selected,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	if err := utils.ValidateRequired(paymentID, "payment id"); err != nil {
		return nil, err
	}
	return s.load(ctx, paymentID)
}

// ListByOwner retrieves all payments of a member
func (s *PaymentService) ListByOwner(ctx context.Context, ownerID string) ([]models.Payment, error) {
	if err := utils.ValidateRequired(ownerID, "owner id"); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOwner(ctx, strings.TrimSpace(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by owner: %w", err)
	}
	return payments, nil
}

// ListByStatus retrieves all payments in a status
func (s *PaymentService) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	if _, err := models.ParsePaymentStatus(string(status)); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}
	payments, err := s.paymentRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by status: %w", err)
	}
	return payments, nil
}

// ListByPeriod retrieves all payments for a billing period
func (s *PaymentService) ListByPeriod(ctx context.Context, period models.Period) ([]models.Payment, error) {
	if err := utils.ValidatePeriod(period.Month, period.Year); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by period: %w", err)
	}
	return payments, nil
}

// ListDueBetween retrieves payments due within [from, to]
func (s *PaymentService) ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	if from.After(to) {
		return nil, utils.NewValidationError("date range start must not be after its end")
	}
	payments, err := s.paymentRepo.FindDueBetween(ctx, utils.StartOfDay(from), utils.StartOfDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by due date: %w", err)
	}
	return payments, nil
}

// ListAll retrieves every payment
func (s *PaymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// update persists a loaded payment, reporting a concurrent delete as not found
func (s *PaymentService) update(ctx context.Context, payment *models.Payment) error {
	err := s.paymentRepo.Update(ctx, payment)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError(utils.ErrPaymentNotFound)
	}
	return err
}

func (s *PaymentService) load(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, strings.TrimSpace(paymentID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError(utils.ErrPaymentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return payment, nil
}
