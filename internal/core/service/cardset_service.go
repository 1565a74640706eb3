package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fwedwicc/rebyuwer-app/internal/api/metrics"
	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
)

// CardSetService implements the ownership-scoped CRUD operations on card
// sets and their cards. Every repository call is filtered by the caller's
// identity; there is no code path that reads or writes another user's data.
type CardSetService struct {
	sets   ports.CardSetRepository
	cards  ports.CardRepository
	logger zerolog.Logger
}

func NewCardSetService(sets ports.CardSetRepository, cards ports.CardRepository, logger zerolog.Logger) *CardSetService {
	return &CardSetService{sets: sets, cards: cards, logger: logger}
}

// ListCardSets returns the caller's sets with each set's cards attached as
// question/answer projections.
func (s *CardSetService) ListCardSets(ctx context.Context, ownerID string) ([]ports.CardSetView, error) {
	sets, err := s.sets.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.CardSetView, 0, len(sets))
	for _, set := range sets {
		cards, err := s.cards.FindBySet(ctx, set.ID)
		if err != nil {
			return nil, err
		}
		cardViews := make([]ports.CardView, 0, len(cards))
		for _, card := range cards {
			cardViews = append(cardViews, ports.CardView{
				ID:       card.ID,
				Question: card.Question,
				Answer:   card.Answer,
			})
		}
		views = append(views, ports.CardSetView{ID: set.ID, Name: set.Name, Cards: cardViews})
	}
	return views, nil
}

func (s *CardSetService) CreateCardSet(ctx context.Context, ownerID, name string) (*domain.CardSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation
	}

	created, err := s.sets.Create(ctx, &domain.CardSet{
		Name:    name,
		OwnerID: ownerID,
		CardIDs: []string{},
	})
	if err != nil {
		return nil, err
	}

	metrics.CardSetsCreatedTotal.Inc()
	s.logger.Info().Str("card_set_id", created.ID).Str("owner_id", ownerID).Msg("card set created")
	return created, nil
}

// RenameCardSet updates the set's name. The lookup filters by both id and
// owner; a set owned by someone else is indistinguishable from a missing one.
func (s *CardSetService) RenameCardSet(ctx context.Context, ownerID, setID, name string) (*domain.CardSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	return s.sets.UpdateName(ctx, setID, ownerID, name)
}

// DeleteCardSet removes the set and every card it contains. Cards go first
// so that an interruption between the two steps can only leave an empty
// set behind, never cards pointing at a missing set.
func (s *CardSetService) DeleteCardSet(ctx context.Context, ownerID, setID string) error {
	if _, err := s.sets.FindByIDAndOwner(ctx, setID, ownerID); err != nil {
		return err
	}

	removed, err := s.cards.DeleteBySet(ctx, setID)
	if err != nil {
		s.logger.Error().Err(err).Str("card_set_id", setID).Msg("cascade delete: removing cards failed")
		return err
	}

	if err := s.sets.Delete(ctx, setID, ownerID); err != nil {
		return err
	}

	metrics.CardSetsDeletedTotal.Inc()
	s.logger.Info().Str("card_set_id", setID).Str("owner_id", ownerID).Int64("cards_removed", removed).Msg("card set deleted")
	return nil
}

// ListCards returns the cards of setID. Ownership is checked before any
// card data is read; a set the caller does not own yields ErrForbidden
// without revealing whether it exists.
func (s *CardSetService) ListCards(ctx context.Context, ownerID, setID string) ([]domain.Card, error) {
	if err := s.requireOwnership(ctx, ownerID, setID); err != nil {
		return nil, err
	}
	return s.cards.FindBySet(ctx, setID)
}

func (s *CardSetService) AddCard(ctx context.Context, ownerID, setID, question, answer string) (*domain.Card, error) {
	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, domain.ErrValidation
	}
	if err := s.requireOwnership(ctx, ownerID, setID); err != nil {
		return nil, err
	}

	created, err := s.cards.Create(ctx, &domain.Card{
		Question:  question,
		Answer:    answer,
		CardSetID: setID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sets.AddCardRef(ctx, setID, ownerID, created.ID); err != nil {
		// Keep card and reference consistent: a card that could not be
		// linked must not survive.
		_ = s.cards.Delete(ctx, created.ID, setID)
		return nil, err
	}

	metrics.CardsCreatedTotal.Inc()
	s.logger.Info().Str("card_id", created.ID).Str("card_set_id", setID).Msg("card added")
	return created, nil
}

func (s *CardSetService) EditCard(ctx context.Context, ownerID, setID, cardID, question, answer string) (*domain.Card, error) {
	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, domain.ErrValidation
	}
	if err := s.requireOwnership(ctx, ownerID, setID); err != nil {
		return nil, err
	}

	card, err := s.cards.FindByIDAndSet(ctx, cardID, setID)
	if err != nil {
		return nil, err
	}

	card.Question = question
	card.Answer = answer
	return s.cards.Update(ctx, card)
}

// DeleteCard removes the card document and its reference in the set. The
// document goes first: a dangling id in CardIDs is invisible to readers,
// while a card without a reference would be unreachable garbage.
func (s *CardSetService) DeleteCard(ctx context.Context, ownerID, setID, cardID string) error {
	if err := s.requireOwnership(ctx, ownerID, setID); err != nil {
		return err
	}

	if err := s.cards.Delete(ctx, cardID, setID); err != nil {
		return err
	}
	return s.sets.RemoveCardRef(ctx, setID, ownerID, cardID)
}

// requireOwnership resolves setID scoped to ownerID, translating a miss
// into ErrForbidden for the card routes.
func (s *CardSetService) requireOwnership(ctx context.Context, ownerID, setID string) error {
	if _, err := s.sets.FindByIDAndOwner(ctx, setID, ownerID); err != nil {
		if errors.Is(err, domain.ErrCardSetNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	return nil
}
