package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fadhlanhapp/volleyleague-backend/models"
)

var _ PaymentStore = (*PaymentRepository)(nil)

const paymentColumns = `id, owner_id, period_month, period_year, amount, due_date, registration_date,
		status, payment_method, receipt_path, notes, updated_at`

// PaymentRepository handles payment data operations in Postgres
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.OwnerID, payment.Period.Month, payment.Period.Year,
		payment.Amount, payment.DueDate, payment.RegistrationDate, string(payment.Status),
		nullIfEmpty(payment.PaymentMethod), nullIfEmpty(payment.ReceiptPath), nullIfEmpty(payment.Notes),
		payment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to insert payment %s: %w", payment.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert payment %s: %w", payment.ID, err)
	}
	return nil
}

// Update rewrites the mutable columns of an existing payment.
// Owner, period, due date and registration date are never rewritten.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.update(ctx, payment, "")
}

// UpdateFromStatus updates the payment only while it is still in status from
func (r *PaymentRepository) UpdateFromStatus(ctx context.Context, payment *models.Payment, from models.PaymentStatus) error {
	return r.update(ctx, payment, " AND status = $8", string(from))
}

func (r *PaymentRepository) update(ctx context.Context, payment *models.Payment, guard string, guardArgs ...any) error {
	query := `
		UPDATE payments SET
			amount = $2,
			status = $3,
			payment_method = $4,
			receipt_path = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1` + guard
	args := append([]any{
		payment.ID, payment.Amount, string(payment.Status),
		nullIfEmpty(payment.PaymentMethod), nullIfEmpty(payment.ReceiptPath), nullIfEmpty(payment.Notes),
		payment.UpdatedAt,
	}, guardArgs...)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID retrieves a payment by its ID
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	payment, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// FindByOwner retrieves all payments of a member, newest period first
func (r *PaymentRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Payment, error) {
	return r.query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE owner_id = $1
		ORDER BY period_year DESC, period_month DESC`, ownerID)
}

// FindByStatus retrieves all payments in a status
func (r *PaymentRepository) FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	return r.query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE status = $1
		ORDER BY registration_date, id`, string(status))
}

// FindByPeriod retrieves all payments for a billing period
func (r *PaymentRepository) FindByPeriod(ctx context.Context, period models.Period) ([]models.Payment, error) {
	return r.query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE period_month = $1 AND period_year = $2
		ORDER BY owner_id`, period.Month, period.Year)
}

// FindDueBetween retrieves payments due within [from, to]
func (r *PaymentRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	return r.query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE due_date BETWEEN $1 AND $2
		ORDER BY due_date, id`, from, to)
}

// FindPendingOlderThan retrieves PENDING payments registered strictly before cutoff
func (r *PaymentRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Payment, error) {
	return r.query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE status = $1 AND registration_date < $2
		ORDER BY registration_date, id`, string(models.StatusPending), cutoff)
}

// FindAll retrieves every payment
func (r *PaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	return r.query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		ORDER BY registration_date, id`)
}

// ExistsForOwnerAndPeriod reports whether the member already has a payment for the period
func (r *PaymentRepository) ExistsForOwnerAndPeriod(ctx context.Context, ownerID string, period models.Period) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM payments WHERE owner_id = $1 AND period_month = $2 AND period_year = $3
		)`, ownerID, period.Month, period.Year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payment period: %w", err)
	}
	return exists, nil
}

// Delete deletes a payment by ID
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) query(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var (
		payment       models.Payment
		status        string
		paymentMethod sql.NullString
		receiptPath   sql.NullString
		notes         sql.NullString
	)
	err := row.Scan(
		&payment.ID, &payment.OwnerID, &payment.Period.Month, &payment.Period.Year,
		&payment.Amount, &payment.DueDate, &payment.RegistrationDate,
		&status, &paymentMethod, &receiptPath, &notes, &payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.Status = models.PaymentStatus(status)
	payment.PaymentMethod = paymentMethod.String
	payment.ReceiptPath = receiptPath.String
	payment.Notes = notes.String
	return &payment, nil
}
