package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/services"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// LeagueHandler handles registrations and set scoring
type LeagueHandler struct {
	registrationService *services.RegistrationService
}

// NewLeagueHandler creates a new league handler
func NewLeagueHandler(registrationService *services.RegistrationService) *LeagueHandler {
	return &LeagueHandler{registrationService: registrationService}
}

// RegisterTeam handles POST /registrations
func (h *LeagueHandler) RegisterTeam(c *gin.Context) {
	var req models.RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	registration, err := h.registrationService.RegisterTeam(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, registration)
}

// EvaluateSet handles POST /sets/evaluate
func (h *LeagueHandler) EvaluateSet(c *gin.Context) {
	var set models.Set
	if err := c.ShouldBindJSON(&set); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	outcome, err := services.EvaluateSet(set)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, outcome)
}
