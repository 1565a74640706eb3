package ports

import (
	"context"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
)

// CardView is the card projection attached to listed sets: question and
// answer only.
type CardView struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CardSetView is a set together with its cards, as returned by list.
type CardSetView struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Cards []CardView `json:"cards"`
}

// CardSetService is the ownership-scoped CRUD surface for sets and cards.
// Every method takes the authenticated caller's user id as its first
// argument; no operation ever touches a resource the caller does not own.
type CardSetService interface {
	ListCardSets(ctx context.Context, ownerID string) ([]CardSetView, error)
	CreateCardSet(ctx context.Context, ownerID, name string) (*domain.CardSet, error)
	RenameCardSet(ctx context.Context, ownerID, setID, name string) (*domain.CardSet, error)
	DeleteCardSet(ctx context.Context, ownerID, setID string) error

	ListCards(ctx context.Context, ownerID, setID string) ([]domain.Card, error)
	AddCard(ctx context.Context, ownerID, setID, question, answer string) (*domain.Card, error)
	EditCard(ctx context.Context, ownerID, setID, cardID, question, answer string) (*domain.Card, error)
	DeleteCard(ctx context.Context, ownerID, setID, cardID string) error
}
