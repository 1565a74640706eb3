package domain

import (
	"errors"
	"time"
)

var ErrCardSetNotFound = errors.New("card set not found")
var ErrCardNotFound = errors.New("card not found")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")

// CardSet is a named collection of flashcards owned by exactly one user.
// Ownership is fixed at creation and never reassigned.
type CardSet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CardIDs   []string  `json:"card_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Card is a single question/answer pair belonging to exactly one CardSet.
// Cards are only reachable through their owning set.
type Card struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CardSetID string    `json:"card_set_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
