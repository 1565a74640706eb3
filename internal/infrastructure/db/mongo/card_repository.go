package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
)

const cardsCollection = "cards"

// CardRepository persists cards. Single-card lookups filter by
// {_id, card_set_id}; a card outside the given set reads as missing.
type CardRepository struct {
	coll *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{coll: db.Collection(cardsCollection)}
}

type mongoCard struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Question  string             `bson:"question"`
	Answer    string             `bson:"answer"`
	CardSetID string             `bson:"card_set_id"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (mc mongoCard) toDomain() *domain.Card {
	return &domain.Card{
		ID:        mc.ID.Hex(),
		Question:  mc.Question,
		Answer:    mc.Answer,
		CardSetID: mc.CardSetID,
		CreatedAt: unixToTime(mc.CreatedAt),
		UpdatedAt: unixToTime(mc.UpdatedAt),
	}
}

func cardFilter(id, setID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCardNotFound
	}
	return bson.M{"_id": oid, "card_set_id": setID}, nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	now := time.Now().UTC()
	doc := mongoCard{
		Question:  card.Question,
		Answer:    card.Answer,
		CardSetID: card.CardSetID,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *CardRepository) FindBySet(ctx context.Context, setID string) ([]domain.Card, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"card_set_id": setID})
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer cursor.Close(ctx)

	cards := []domain.Card{}
	for cursor.Next(ctx) {
		var mc mongoCard
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		cards = append(cards, *mc.toDomain())
	}
	return cards, cursor.Err()
}

func (r *CardRepository) FindByIDAndSet(ctx context.Context, id, setID string) (*domain.Card, error) {
	filter, err := cardFilter(id, setID)
	if err != nil {
		return nil, err
	}

	var mc mongoCard
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return mc.toDomain(), nil
}

// Update overwrites question and answer in a single atomic document write;
// concurrent edits to the same card are last-write-wins.
func (r *CardRepository) Update(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	filter, err := cardFilter(card.ID, card.CardSetID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"question":   card.Question,
		"answer":     card.Answer,
		"updated_at": time.Now().UTC().Unix(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mc mongoCard
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("update card: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CardRepository) Delete(ctx context.Context, id, setID string) error {
	filter, err := cardFilter(id, setID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// DeleteBySet removes every card of a set. Zero deletions is not an error:
// an empty set cascades to nothing.
func (r *CardRepository) DeleteBySet(ctx context.Context, setID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"card_set_id": setID})
	if err != nil {
		return 0, fmt.Errorf("delete cards of set: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the set index used by list and cascade queries.
func (r *CardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "card_set_id", Value: 1}},
	})
	return err
}
