package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
)

type stubCardSetRepo struct {
	sets   map[string]*domain.CardSet
	nextID int
}

func newStubCardSetRepo() *stubCardSetRepo {
	return &stubCardSetRepo{sets: make(map[string]*domain.CardSet)}
}

func cloneSet(s *domain.CardSet) *domain.CardSet {
	clone := *s
	clone.CardIDs = append([]string{}, s.CardIDs...)
	return &clone
}

func (r *stubCardSetRepo) Create(_ context.Context, set *domain.CardSet) (*domain.CardSet, error) {
	r.nextID++
	created := cloneSet(set)
	created.ID = "set_" + strconv.Itoa(r.nextID)
	r.sets[created.ID] = cloneSet(created)
	return cloneSet(created), nil
}

func (r *stubCardSetRepo) FindByOwner(_ context.Context, ownerID string) ([]domain.CardSet, error) {
	out := []domain.CardSet{}
	for _, s := range r.sets {
		if s.OwnerID == ownerID {
			out = append(out, *cloneSet(s))
		}
	}
	return out, nil
}

func (r *stubCardSetRepo) findScoped(id, ownerID string) (*domain.CardSet, error) {
	s, ok := r.sets[id]
	if !ok || s.OwnerID != ownerID {
		return nil, domain.ErrCardSetNotFound
	}
	return s, nil
}

func (r *stubCardSetRepo) FindByIDAndOwner(_ context.Context, id, ownerID string) (*domain.CardSet, error) {
	s, err := r.findScoped(id, ownerID)
	if err != nil {
		return nil, err
	}
	return cloneSet(s), nil
}

func (r *stubCardSetRepo) UpdateName(_ context.Context, id, ownerID, name string) (*domain.CardSet, error) {
	s, err := r.findScoped(id, ownerID)
	if err != nil {
		return nil, err
	}
	s.Name = name
	return cloneSet(s), nil
}

func (r *stubCardSetRepo) AddCardRef(_ context.Context, id, ownerID, cardID string) error {
	s, err := r.findScoped(id, ownerID)
	if err != nil {
		return err
	}
	s.CardIDs = append(s.CardIDs, cardID)
	return nil
}

func (r *stubCardSetRepo) RemoveCardRef(_ context.Context, id, ownerID, cardID string) error {
	s, err := r.findScoped(id, ownerID)
	if err != nil {
		return err
	}
	kept := s.CardIDs[:0]
	for _, cid := range s.CardIDs {
		if cid != cardID {
			kept = append(kept, cid)
		}
	}
	s.CardIDs = kept
	return nil
}

func (r *stubCardSetRepo) Delete(_ context.Context, id, ownerID string) error {
	if _, err := r.findScoped(id, ownerID); err != nil {
		return err
	}
	delete(r.sets, id)
	return nil
}

type stubCardRepo struct {
	cards  map[string]*domain.Card
	nextID int
}

func newStubCardRepo() *stubCardRepo {
	return &stubCardRepo{cards: make(map[string]*domain.Card)}
}

func (r *stubCardRepo) Create(_ context.Context, card *domain.Card) (*domain.Card, error) {
	r.nextID++
	created := *card
	created.ID = "card_" + strconv.Itoa(r.nextID)
	r.cards[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubCardRepo) FindBySet(_ context.Context, setID string) ([]domain.Card, error) {
	out := []domain.Card{}
	for _, c := range r.cards {
		if c.CardSetID == setID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCardRepo) FindByIDAndSet(_ context.Context, id, setID string) (*domain.Card, error) {
	c, ok := r.cards[id]
	if !ok || c.CardSetID != setID {
		return nil, domain.ErrCardNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCardRepo) Update(_ context.Context, card *domain.Card) (*domain.Card, error) {
	existing, ok := r.cards[card.ID]
	if !ok || existing.CardSetID != card.CardSetID {
		return nil, domain.ErrCardNotFound
	}
	existing.Question = card.Question
	existing.Answer = card.Answer
	clone := *existing
	return &clone, nil
}

func (r *stubCardRepo) Delete(_ context.Context, id, setID string) error {
	c, ok := r.cards[id]
	if !ok || c.CardSetID != setID {
		return domain.ErrCardNotFound
	}
	delete(r.cards, id)
	return nil
}

func (r *stubCardRepo) DeleteBySet(_ context.Context, setID string) (int64, error) {
	var n int64
	for id, c := range r.cards {
		if c.CardSetID == setID {
			delete(r.cards, id)
			n++
		}
	}
	return n, nil
}

func newCardSetService() (*CardSetService, *stubCardSetRepo, *stubCardRepo) {
	sets := newStubCardSetRepo()
	cards := newStubCardRepo()
	return NewCardSetService(sets, cards, zerolog.Nop()), sets, cards
}

func TestCardSetService_CreateCardSet(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "  Bio  ")
	if err != nil {
		t.Fatalf("CreateCardSet returned error: %v", err)
	}
	if set.Name != "Bio" {
		t.Fatalf("expected trimmed name, got %q", set.Name)
	}
	if set.OwnerID != "alice" {
		t.Fatalf("unexpected owner: %s", set.OwnerID)
	}
	if len(set.CardIDs) != 0 {
		t.Fatalf("new set should start with zero cards, got %d", len(set.CardIDs))
	}
}

func TestCardSetService_CreateCardSet_EmptyName(t *testing.T) {
	svc, _, _ := newCardSetService()

	if _, err := svc.CreateCardSet(context.Background(), "alice", "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCardSetService_ListCardSets_OwnerScoped(t *testing.T) {
	svc, _, _ := newCardSetService()

	if _, err := svc.CreateCardSet(context.Background(), "alice", "Bio"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateCardSet(context.Background(), "bob", "Chem"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	views, err := svc.ListCardSets(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListCardSets returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 set for alice, got %d", len(views))
	}
	if views[0].Name != "Bio" {
		t.Fatalf("unexpected set: %+v", views[0])
	}
}

func TestCardSetService_ListCardSets_AttachesCards(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddCard(context.Background(), "alice", set.ID, "DNA?", "Double helix"); err != nil {
		t.Fatalf("add card failed: %v", err)
	}

	views, err := svc.ListCardSets(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListCardSets returned error: %v", err)
	}
	if len(views) != 1 || len(views[0].Cards) != 1 {
		t.Fatalf("expected 1 set with 1 card, got %+v", views)
	}
	card := views[0].Cards[0]
	if card.Question != "DNA?" || card.Answer != "Double helix" {
		t.Fatalf("unexpected card view: %+v", card)
	}
}

func TestCardSetService_RenameCardSet(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	renamed, err := svc.RenameCardSet(context.Background(), "alice", set.ID, "Biology")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "Biology" {
		t.Fatalf("expected renamed set, got %q", renamed.Name)
	}
}

func TestCardSetService_RenameCardSet_OtherOwner(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "bob", "Chem")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Alice supplies Bob's real set id; the ownership filter must make it
	// indistinguishable from a missing set.
	if _, err := svc.RenameCardSet(context.Background(), "alice", set.ID, "Stolen"); !errors.Is(err, domain.ErrCardSetNotFound) {
		t.Fatalf("expected ErrCardSetNotFound, got %v", err)
	}
}

func TestCardSetService_DeleteCardSet_Cascades(t *testing.T) {
	svc, sets, cards := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.AddCard(context.Background(), "alice", set.ID, "q", "a"); err != nil {
			t.Fatalf("add card failed: %v", err)
		}
	}

	if err := svc.DeleteCardSet(context.Background(), "alice", set.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, ok := sets.sets[set.ID]; ok {
		t.Fatalf("set still present after delete")
	}
	remaining, _ := cards.FindBySet(context.Background(), set.ID)
	if len(remaining) != 0 {
		t.Fatalf("expected zero cards after cascade, got %d", len(remaining))
	}
}

func TestCardSetService_DeleteCardSet_Idempotent(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.DeleteCardSet(context.Background(), "alice", set.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.DeleteCardSet(context.Background(), "alice", set.ID); !errors.Is(err, domain.ErrCardSetNotFound) {
		t.Fatalf("expected ErrCardSetNotFound on second delete, got %v", err)
	}
}

func TestCardSetService_ListCards_Forbidden(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "bob", "Chem")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.ListCards(context.Background(), "alice", set.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCardSetService_AddCard(t *testing.T) {
	svc, sets, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	card, err := svc.AddCard(context.Background(), "alice", set.ID, "DNA?", "Double helix")
	if err != nil {
		t.Fatalf("AddCard returned error: %v", err)
	}
	if card.CardSetID != set.ID {
		t.Fatalf("card not linked to set: %+v", card)
	}

	stored := sets.sets[set.ID]
	if len(stored.CardIDs) != 1 || stored.CardIDs[0] != card.ID {
		t.Fatalf("card id not appended to set: %+v", stored.CardIDs)
	}
}

func TestCardSetService_AddCard_Validation(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.AddCard(context.Background(), "alice", set.ID, "", "a"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty question, got %v", err)
	}
	if _, err := svc.AddCard(context.Background(), "alice", set.ID, "q", "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty answer, got %v", err)
	}
}

func TestCardSetService_AddCard_OtherOwner(t *testing.T) {
	svc, _, cards := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "bob", "Chem")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.AddCard(context.Background(), "alice", set.ID, "q", "a"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(cards.cards) != 0 {
		t.Fatalf("no card should be created on forbidden add")
	}
}

func TestCardSetService_EditCard_RoundTrip(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	card, err := svc.AddCard(context.Background(), "alice", set.ID, "Q", "A")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	listed, err := svc.ListCards(context.Background(), "alice", set.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Question != "Q" || listed[0].Answer != "A" {
		t.Fatalf("unexpected cards after add: %+v", listed)
	}

	if _, err := svc.EditCard(context.Background(), "alice", set.ID, card.ID, "Q2", "A2"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	listed, err = svc.ListCards(context.Background(), "alice", set.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected exactly one card, got %d", len(listed))
	}
	if listed[0].Question != "Q2" || listed[0].Answer != "A2" {
		t.Fatalf("expected updated values, got %+v", listed[0])
	}
}

func TestCardSetService_EditCard_WrongSet(t *testing.T) {
	svc, _, _ := newCardSetService()

	setA, _ := svc.CreateCardSet(context.Background(), "alice", "Bio")
	setB, _ := svc.CreateCardSet(context.Background(), "alice", "Chem")
	card, err := svc.AddCard(context.Background(), "alice", setA.ID, "Q", "A")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.EditCard(context.Background(), "alice", setB.ID, card.ID, "Q2", "A2"); !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCardSetService_DeleteCard_RemovesRef(t *testing.T) {
	svc, sets, cards := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	card, err := svc.AddCard(context.Background(), "alice", set.ID, "Q", "A")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.DeleteCard(context.Background(), "alice", set.ID, card.ID); err != nil {
		t.Fatalf("delete card failed: %v", err)
	}

	if len(cards.cards) != 0 {
		t.Fatalf("card still stored after delete")
	}
	if len(sets.sets[set.ID].CardIDs) != 0 {
		t.Fatalf("dangling card reference left in set: %+v", sets.sets[set.ID].CardIDs)
	}
}

func TestCardSetService_DeleteCard_NotFound(t *testing.T) {
	svc, _, _ := newCardSetService()

	set, err := svc.CreateCardSet(context.Background(), "alice", "Bio")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteCard(context.Background(), "alice", set.ID, "card_404"); !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}
