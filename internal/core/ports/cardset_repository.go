package ports

import (
	"context"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
)

// CardSetRepository persists card sets. Every lookup that takes an ownerID
// filters by it; there is no unscoped variant on purpose.
type CardSetRepository interface {
	Create(ctx context.Context, set *domain.CardSet) (*domain.CardSet, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.CardSet, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.CardSet, error)
	UpdateName(ctx context.Context, id, ownerID, name string) (*domain.CardSet, error)
	AddCardRef(ctx context.Context, id, ownerID, cardID string) error
	RemoveCardRef(ctx context.Context, id, ownerID, cardID string) error
	Delete(ctx context.Context, id, ownerID string) error
}

// CardRepository persists cards. Lookups are scoped to the owning set.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)
	FindBySet(ctx context.Context, setID string) ([]domain.Card, error)
	FindByIDAndSet(ctx context.Context, id, setID string) (*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) (*domain.Card, error)
	Delete(ctx context.Context, id, setID string) error
	// DeleteBySet removes every card of the set, the child step of the
	// cascading delete.
	DeleteBySet(ctx context.Context, setID string) (int64, error)
}
