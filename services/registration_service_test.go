package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/repository"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

func TestRegistrationService_RegisterTeam(t *testing.T) {
	service := NewRegistrationService(repository.NewMemoryRegistrationRepository())
	ctx := context.Background()
	req := &models.RegisterTeamRequest{TeamID: "T1", TournamentID: "CUP", CategoryID: "U18"}

	registration, err := service.RegisterTeam(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, registration.ID)
	assert.Equal(t, "T1", registration.TeamID)
	assert.False(t, registration.RegisteredAt.IsZero())

	_, err = service.RegisterTeam(ctx, req)
	assert.ErrorIs(t, err, utils.ErrConflict)

	// Same team, different category
	_, err = service.RegisterTeam(ctx, &models.RegisterTeamRequest{TeamID: "T1", TournamentID: "CUP", CategoryID: "OPEN"})
	assert.NoError(t, err)
}

func TestRegistrationService_RequiresIDs(t *testing.T) {
	service := NewRegistrationService(repository.NewMemoryRegistrationRepository())

	_, err := service.RegisterTeam(context.Background(), &models.RegisterTeamRequest{TeamID: "T1", TournamentID: "CUP"})

	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.EqualError(t, err, "category id is required")
}
