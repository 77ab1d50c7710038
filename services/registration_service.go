package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/repository"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// RegistrationService registers teams into tournament categories
type RegistrationService struct {
	registrationRepo repository.RegistrationStore
	now              func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(registrationRepo repository.RegistrationStore) *RegistrationService {
	return &RegistrationService{registrationRepo: registrationRepo, now: time.Now}
}

// RegisterTeam enters a team into a tournament category once
func (s *RegistrationService) RegisterTeam(ctx context.Context, req *models.RegisterTeamRequest) (*models.Registration, error) {
	teamID := strings.TrimSpace(req.TeamID)
	tournamentID := strings.TrimSpace(req.TournamentID)
	categoryID := strings.TrimSpace(req.CategoryID)

	if err := utils.ValidateRequired(teamID, "team id"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(tournamentID, "tournament id"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(categoryID, "category id"); err != nil {
		return nil, err
	}

	exists, err := s.registrationRepo.ExistsForTeamAndCategory(ctx, teamID, tournamentID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return nil, utils.NewConflictError(utils.ErrDuplicateRegistration)
	}

	registration := &models.Registration{
		ID:           utils.GenerateID(),
		TeamID:       teamID,
		TournamentID: tournamentID,
		CategoryID:   categoryID,
		RegisteredAt: s.now(),
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError(utils.ErrDuplicateRegistration)
		}
		return nil, fmt.Errorf("failed to store registration: %w", err)
	}

	slog.Info("Team registered",
		"registration_id", registration.ID,
		"team_id", teamID,
		"tournament_id", tournamentID,
		"category_id", categoryID,
	)
	return registration, nil
}
