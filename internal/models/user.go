package models

import "github.com/google/uuid"

type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Username string    `json:"username"`

	IsEphemeral bool `json:"is_ephemeral"`
	IsAdmin     bool `json:"is_admin"`

	// ActiveGameID is the single game this user is currently seated in, if any.
	// The session layer enforces the one-active-game rule with it.
	ActiveGameID *uuid.UUID `json:"active_game_id,omitempty"`
}
