package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// reconcileNote is appended to every payment the sweep marks overdue
const reconcileNote = "marked overdue by reconciliation"

// validateGenericTarget checks a status requested through the generic
// status-change path. PAID is reachable only through settlement.
func validateGenericTarget(target models.PaymentStatus) error {
	switch target {
	case "":
		return utils.NewValidationError("status is required")
	case models.StatusPaid:
		return utils.NewConflictError(utils.ErrUseSettleEndpoint)
	case models.StatusPending, models.StatusOverdue:
		return nil
	default:
		return utils.NewValidationError("unknown payment status " + string(target))
	}
}

// validateSettlement checks the settled amount and method
func validateSettlement(amount *decimal.Decimal, method string) error {
	if err := utils.ValidatePositiveAmount(amount, "amount paid"); err != nil {
		return err
	}
	return utils.ValidateRequired(method, "payment method")
}

// checkDeletable rejects deletion of settled payments
func checkDeletable(payment *models.Payment) error {
	if payment.IsPaid() {
		return utils.NewStateError(utils.ErrPaidNotDeletable)
	}
	return nil
}

// reconcileCutoff is the registration instant before which a pending payment is stale
func reconcileCutoff(now time.Time, graceDays int) time.Time {
	return utils.DaysBefore(now, graceDays)
}

// isOverdueEligible mirrors the store's pending-older-than selection.
// The comparison is strict: a payment registered exactly at the cutoff stays pending.
func isOverdueEligible(payment *models.Payment, cutoff time.Time) bool {
	return payment.Status == models.StatusPending && payment.RegistrationDate.Before(cutoff)
}

// applySettlement moves the payment to PAID with the settled details
func applySettlement(payment *models.Payment, amount decimal.Decimal, method, receiptPath string, now time.Time) {
	payment.Status = models.StatusPaid
	payment.Amount = utils.RoundMoney(amount)
	payment.PaymentMethod = method
	if receiptPath != "" {
		payment.ReceiptPath = receiptPath
	}
	payment.UpdatedAt = now
}

// applyStatus overwrites the status and appends notes
func applyStatus(payment *models.Payment, status models.PaymentStatus, notes string, now time.Time) {
	payment.Status = status
	payment.Notes = utils.AppendNote(payment.Notes, notes)
	payment.UpdatedAt = now
}
