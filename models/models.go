// models/models.go
package models

import "time"

// Member is a league user who can own payment obligations
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Registration represents a team entered into one category of a tournament
type Registration struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"teamId"`
	TournamentID string    `json:"tournamentId"`
	CategoryID   string    `json:"categoryId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RegisterTeamRequest represents the request body for registering a team
type RegisterTeamRequest struct {
	TeamID       string `json:"teamId"`
	TournamentID string `json:"tournamentId"`
	CategoryID   string `json:"categoryId"`
}

// SetSide names one of the two teams playing a set
type SetSide string

const (
	SideNone SetSide = ""
	SideHome SetSide = "HOME"
	SideAway SetSide = "AWAY"
)

// Set is one set of a match with the points each side scored
type Set struct {
	ID         string `json:"id"`
	MatchID    string `json:"matchId"`
	Number     int    `json:"number"`
	HomePoints int    `json:"homePoints"`
	AwayPoints int    `json:"awayPoints"`
}

// SetOutcome is the result derived from a set's points
type SetOutcome struct {
	Finished bool    `json:"finished"`
	Winner   SetSide `json:"winner,omitempty"`
}
