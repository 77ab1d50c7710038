package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/fadhlanhapp/volleyleague-backend/models"
)

var (
	_ RegistrationStore = (*RegistrationRepository)(nil)
	_ RegistrationStore = (*MemoryRegistrationRepository)(nil)
)

// RegistrationRepository handles team registrations in Postgres
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// ExistsForTeamAndCategory reports whether the team is already in the tournament category
func (r *RegistrationRepository) ExistsForTeamAndCategory(ctx context.Context, teamID, tournamentID, categoryID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE team_id = $1 AND tournament_id = $2 AND category_id = $3
		)`, teamID, tournamentID, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return exists, nil
}

// Create stores a new registration
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registrations (id, team_id, tournament_id, category_id, registered_at)
		VALUES ($1, $2, $3, $4, $5)`,
		registration.ID, registration.TeamID, registration.TournamentID,
		registration.CategoryID, registration.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// MemoryRegistrationRepository keeps registrations in process memory
type MemoryRegistrationRepository struct {
	mu            sync.RWMutex
	registrations map[string]models.Registration
}

func NewMemoryRegistrationRepository() *MemoryRegistrationRepository {
	return &MemoryRegistrationRepository{registrations: make(map[string]models.Registration)}
}

func (r *MemoryRegistrationRepository) ExistsForTeamAndCategory(_ context.Context, teamID, tournamentID, categoryID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.existsLocked(teamID, tournamentID, categoryID), nil
}

func (r *MemoryRegistrationRepository) Create(_ context.Context, registration *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsLocked(registration.TeamID, registration.TournamentID, registration.CategoryID) {
		return ErrDuplicate
	}
	r.registrations[registration.ID] = *registration
	return nil
}

func (r *MemoryRegistrationRepository) existsLocked(teamID, tournamentID, categoryID string) bool {
	for _, reg := range r.registrations {
		if reg.TeamID == teamID && reg.TournamentID == tournamentID && reg.CategoryID == categoryID {
			return true
		}
	}
	return false
}
