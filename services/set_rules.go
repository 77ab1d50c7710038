package services

import (
	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// EvaluateSet derives whether a set is finished and who won it.
// A side wins on reaching the target points with a lead of at least two;
// the deciding fifth set is played to 15 instead of 25.
func EvaluateSet(set models.Set) (models.SetOutcome, error) {
	if err := utils.ValidateNonNegative(set.HomePoints, "home points"); err != nil {
		return models.SetOutcome{}, err
	}
	if err := utils.ValidateNonNegative(set.AwayPoints, "away points"); err != nil {
		return models.SetOutcome{}, err
	}
	if set.Number < 1 || set.Number > utils.DecidingSetNumber {
		return models.SetOutcome{}, utils.NewValidationError("set number must be between 1 and 5")
	}

	target := utils.SetTargetPoints
	if set.Number == utils.DecidingSetNumber {
		target = utils.DecidingSetTargetPoints
	}

	switch {
	case set.HomePoints >= target && set.HomePoints-set.AwayPoints >= utils.SetWinMargin:
		return models.SetOutcome{Finished: true, Winner: models.SideHome}, nil
	case set.AwayPoints >= target && set.AwayPoints-set.HomePoints >= utils.SetWinMargin:
		return models.SetOutcome{Finished: true, Winner: models.SideAway}, nil
	default:
		return models.SetOutcome{Finished: false, Winner: models.SideNone}, nil
	}
}
