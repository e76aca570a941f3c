// ABOUTME: Turn represents a single human/assistant exchange in a session
// ABOUTME: Core record of the bounded per-session conversation history
package models

import (
	"errors"
	"strings"
)

// Turn is one completed exchange. Interaction is the position the turn had
// in the history at append time.
type Turn struct {
	Interaction int    `json:"interaction"`
	Human       string `json:"human"`
	Assistant   string `json:"assistant"`
}

// NewTurn creates a Turn with validation.
func NewTurn(interaction int, human, assistant string) (Turn, error) {
	if strings.TrimSpace(human) == "" {
		return Turn{}, errors.New("human message cannot be empty")
	}
	if interaction < 0 {
		return Turn{}, errors.New("interaction index cannot be negative")
	}
	return Turn{
		Interaction: interaction,
		Human:       human,
		Assistant:   assistant,
	}, nil
}
