// Package repository provides the persistence ports used by the services and
// their Postgres and in-memory implementations.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fadhlanhapp/volleyleague-backend/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// PaymentStore persists payment records.
// Every write touches a single record atomically; there is no cross-record
// transaction. Updates never recreate a deleted record.
type PaymentStore interface {
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Payment, error)
	FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	FindByPeriod(ctx context.Context, period models.Period) ([]models.Payment, error)
	// FindDueBetween returns records whose due date falls in [from, to].
	FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Payment, error)
	// FindPendingOlderThan returns PENDING records registered strictly before cutoff.
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Payment, error)
	ExistsForOwnerAndPeriod(ctx context.Context, ownerID string, period models.Period) (bool, error)
	// Create inserts a new record. ErrDuplicate when the id or the
	// owner and period pair is taken.
	Create(ctx context.Context, payment *models.Payment) error
	// Update rewrites the mutable fields of an existing record.
	// ErrNotFound when the record no longer exists.
	Update(ctx context.Context, payment *models.Payment) error
	// UpdateFromStatus is Update guarded by the stored status. ErrNotFound
	// when the record no longer exists or has left the from status.
	UpdateFromStatus(ctx context.Context, payment *models.Payment, from models.PaymentStatus) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]models.Payment, error)
}

// MemberDirectory resolves member ids.
type MemberDirectory interface {
	MemberExists(ctx context.Context, memberID string) (bool, error)
}

// RegistrationStore persists team registrations.
type RegistrationStore interface {
	ExistsForTeamAndCategory(ctx context.Context, teamID, tournamentID, categoryID string) (bool, error)
	Create(ctx context.Context, registration *models.Registration) error
}
