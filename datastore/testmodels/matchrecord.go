package testmodels

import "github.com/go-openapi/strfmt"

type MatchRecord struct {

	// Identifier of the player the match belongs to.
	// Required: true
	PlayerID *string `json:"PlayerId"`

	// Unique identifier of the match within the player's history.
	// Required: true
	MatchID *string `json:"MatchId"`

	// Final score, formatted as "11-9,11-7".
	Score string `json:"Score,omitempty"`

	// Opponent's display name.
	Opponent string `json:"Opponent,omitempty"`

	// Timestamp when the match was played.
	// Required: true
	// Format: date-time
	PlayedAt *strfmt.DateTime `json:"PlayedAt"`
}
