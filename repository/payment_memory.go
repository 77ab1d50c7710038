package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadhlanhapp/volleyleague-backend/models"
)

var _ PaymentStore = (*MemoryPaymentRepository)(nil)

// MemoryPaymentRepository keeps payments in process memory. Records are
// stored and returned by value so callers never share state with the store.
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{payments: make(map[string]models.Payment)}
}

func (r *MemoryPaymentRepository) Create(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; ok {
		return ErrDuplicate
	}
	for _, other := range r.payments {
		if other.OwnerID == payment.OwnerID && other.Period == payment.Period {
			return ErrDuplicate
		}
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *MemoryPaymentRepository) Update(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(payment, func(models.Payment) bool { return true })
}

func (r *MemoryPaymentRepository) UpdateFromStatus(_ context.Context, payment *models.Payment, from models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(payment, func(stored models.Payment) bool { return stored.Status == from })
}

// updateLocked copies the mutable fields onto the stored record when it
// exists and satisfies guard. Callers hold the write lock.
func (r *MemoryPaymentRepository) updateLocked(payment *models.Payment, guard func(models.Payment) bool) error {
	existing, ok := r.payments[payment.ID]
	if !ok || !guard(existing) {
		return ErrNotFound
	}

	existing.Amount = payment.Amount
	existing.Status = payment.Status
	existing.PaymentMethod = payment.PaymentMethod
	existing.ReceiptPath = payment.ReceiptPath
	existing.Notes = payment.Notes
	existing.UpdatedAt = payment.UpdatedAt
	r.payments[payment.ID] = existing
	return nil
}

func (r *MemoryPaymentRepository) FindByID(_ context.Context, id string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if payment, ok := r.payments[id]; ok {
		return &payment, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryPaymentRepository) FindByOwner(_ context.Context, ownerID string) ([]models.Payment, error) {
	payments := r.filter(func(p models.Payment) bool { return p.OwnerID == ownerID })
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].Period.Year != payments[j].Period.Year {
			return payments[i].Period.Year > payments[j].Period.Year
		}
		return payments[i].Period.Month > payments[j].Period.Month
	})
	return payments, nil
}

func (r *MemoryPaymentRepository) FindByStatus(_ context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	return r.filter(func(p models.Payment) bool { return p.Status == status }), nil
}

func (r *MemoryPaymentRepository) FindByPeriod(_ context.Context, period models.Period) ([]models.Payment, error) {
	payments := r.filter(func(p models.Payment) bool { return p.Period == period })
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].OwnerID < payments[j].OwnerID })
	return payments, nil
}

func (r *MemoryPaymentRepository) FindDueBetween(_ context.Context, from, to time.Time) ([]models.Payment, error) {
	payments := r.filter(func(p models.Payment) bool {
		return !p.DueDate.Before(from) && !p.DueDate.After(to)
	})
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].DueDate.Before(payments[j].DueDate) })
	return payments, nil
}

func (r *MemoryPaymentRepository) FindPendingOlderThan(_ context.Context, cutoff time.Time) ([]models.Payment, error) {
	return r.filter(func(p models.Payment) bool {
		return p.Status == models.StatusPending && p.RegistrationDate.Before(cutoff)
	}), nil
}

func (r *MemoryPaymentRepository) ExistsForOwnerAndPeriod(_ context.Context, ownerID string, period models.Period) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, payment := range r.payments {
		if payment.OwnerID == ownerID && payment.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryPaymentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return ErrNotFound
	}
	delete(r.payments, id)
	return nil
}

func (r *MemoryPaymentRepository) FindAll(_ context.Context) ([]models.Payment, error) {
	return r.filter(func(models.Payment) bool { return true }), nil
}

// filter returns matching payments ordered by registration date, then id.
func (r *MemoryPaymentRepository) filter(match func(models.Payment) bool) []models.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := []models.Payment{}
	for _, payment := range r.payments {
		if match(payment) {
			payments = append(payments, payment)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].RegistrationDate.Equal(payments[j].RegistrationDate) {
			return payments[i].RegistrationDate.Before(payments[j].RegistrationDate)
		}
		return payments[i].ID < payments[j].ID
	})
	return payments
}
