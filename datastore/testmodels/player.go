package testmodels

import "github.com/go-openapi/strfmt"

type Player struct {

	// Timestamp when the player profile was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt"`

	// Unique identifier for the player.
	// Required: true
	ID *string `json:"Id"`

	// Display name of the player.
	// Required: true
	Name *string `json:"Name"`

	// Optional club affiliation.
	Club string `json:"Club,omitempty"`

	// Timestamp when the player profile was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt"`
}
