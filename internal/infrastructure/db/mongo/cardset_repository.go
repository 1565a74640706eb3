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

const cardSetsCollection = "card_sets"

// CardSetRepository persists card sets. Every single-document query filters
// by {_id, owner_id} so a set belonging to another user behaves exactly like
// a missing one.
type CardSetRepository struct {
	coll *mongo.Collection
}

func NewCardSetRepository(db *mongo.Database) *CardSetRepository {
	return &CardSetRepository{coll: db.Collection(cardSetsCollection)}
}

type mongoCardSet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	OwnerID   string             `bson:"owner_id"`
	CardIDs   []string           `bson:"card_ids"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (ms mongoCardSet) toDomain() *domain.CardSet {
	cardIDs := ms.CardIDs
	if cardIDs == nil {
		cardIDs = []string{}
	}
	return &domain.CardSet{
		ID:        ms.ID.Hex(),
		Name:      ms.Name,
		OwnerID:   ms.OwnerID,
		CardIDs:   cardIDs,
		CreatedAt: unixToTime(ms.CreatedAt),
		UpdatedAt: unixToTime(ms.UpdatedAt),
	}
}

// ownerFilter builds the uniform {_id, owner_id} filter. An unparseable id
// cannot match any document, which callers report as not found.
func ownerFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCardSetNotFound
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, nil
}

func (r *CardSetRepository) Create(ctx context.Context, set *domain.CardSet) (*domain.CardSet, error) {
	now := time.Now().UTC()
	doc := mongoCardSet{
		Name:      set.Name,
		OwnerID:   set.OwnerID,
		CardIDs:   []string{},
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert card set: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *CardSetRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.CardSet, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list card sets: %w", err)
	}
	defer cursor.Close(ctx)

	sets := []domain.CardSet{}
	for cursor.Next(ctx) {
		var ms mongoCardSet
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode card set: %w", err)
		}
		sets = append(sets, *ms.toDomain())
	}
	return sets, cursor.Err()
}

func (r *CardSetRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.CardSet, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var ms mongoCardSet
	if err := r.coll.FindOne(ctx, filter).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardSetNotFound
		}
		return nil, fmt.Errorf("find card set: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *CardSetRepository) UpdateName(ctx context.Context, id, ownerID, name string) (*domain.CardSet, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC().Unix()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoCardSet
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardSetNotFound
		}
		return nil, fmt.Errorf("rename card set: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *CardSetRepository) AddCardRef(ctx context.Context, id, ownerID, cardID string) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"card_ids": cardID},
		"$set":  bson.M{"updated_at": time.Now().UTC().Unix()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("add card ref: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCardSetNotFound
	}
	return nil
}

func (r *CardSetRepository) RemoveCardRef(ctx context.Context, id, ownerID, cardID string) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"card_ids": cardID},
		"$set":  bson.M{"updated_at": time.Now().UTC().Unix()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("remove card ref: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCardSetNotFound
	}
	return nil
}

func (r *CardSetRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete card set: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardSetNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *CardSetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
