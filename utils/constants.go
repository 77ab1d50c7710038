package utils

const (
	// Billing periods
	MinMonth      = 1
	MaxMonth      = 12
	MinPeriodYear = 2000
	MaxPeriodYear = 9999

	// Dates travel as plain calendar days
	DateLayout = "2006-01-02"

	// Notes are append-only and joined with this separator
	NotesSeparator = " | "

	// Volleyball scoring
	SetTargetPoints         = 25
	DecidingSetTargetPoints = 15
	DecidingSetNumber       = 5
	SetWinMargin            = 2

	// HTTP status messages
	ErrInvalidRequest        = "Invalid request"
	ErrPaymentNotFound       = "Payment"
	ErrMemberNotFound        = "Member"
	ErrUseSettleEndpoint     = "payments can only be marked PAID through the settle endpoint"
	ErrPaidNotDeletable      = "paid payments cannot be deleted"
	ErrDuplicatePayment      = "a payment already exists for this member and period"
	ErrDuplicateRegistration = "team is already registered in this tournament category"

	// Precision for monetary amounts
	MoneyScale = 2
)
