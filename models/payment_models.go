package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a member payment
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
	StatusOverdue PaymentStatus = "OVERDUE"
)

// ParsePaymentStatus converts caller input into a known status
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch status := PaymentStatus(strings.ToUpper(strings.TrimSpace(raw))); status {
	case StatusPending, StatusPaid, StatusOverdue:
		return status, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Period identifies the billing cycle a payment covers
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%d", p.Month, p.Year)
}

// Payment is a member's obligation for one period
type Payment struct {
	ID               string          `json:"id" db:"id"`
	OwnerID          string          `json:"ownerId" db:"owner_id"`
	Period           Period          `json:"period"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	DueDate          time.Time       `json:"dueDate" db:"due_date"`
	RegistrationDate time.Time       `json:"registrationDate" db:"registration_date"`
	Status           PaymentStatus   `json:"status" db:"status"`
	PaymentMethod    string          `json:"paymentMethod,omitempty" db:"payment_method"`
	ReceiptPath      string          `json:"receiptPath,omitempty" db:"receipt_path"`
	Notes            string          `json:"notes,omitempty" db:"notes"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsPaid reports whether the payment has been settled
func (p *Payment) IsPaid() bool {
	return p.Status == StatusPaid
}

// CreatePaymentRequest represents the request body for creating a payment
type CreatePaymentRequest struct {
	OwnerID string           `json:"ownerId"`
	Month   int              `json:"month"`
	Year    int              `json:"year"`
	Amount  *decimal.Decimal `json:"amount"`
	DueDate string           `json:"dueDate"`
}

// UpdateStatusRequest represents the request body for a generic status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ReplaceNotesRequest represents the request body for overwriting notes
type ReplaceNotesRequest struct {
	Notes string `json:"notes"`
}

// SettlePaymentRequest represents the request body for marking a payment as paid
type SettlePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	ReceiptPath   string           `json:"receiptPath"`
}

// ReconcileResult summarizes one overdue reconciliation sweep
type ReconcileResult struct {
	Cutoff   time.Time `json:"cutoff"`
	Selected int       `json:"selected"`
	Updated  int       `json:"updated"`
	Skipped  int       `json:"skipped"`
	Failed   int       `json:"failed"`
}
