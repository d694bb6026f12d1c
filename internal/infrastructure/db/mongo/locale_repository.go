package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamsite/content-api/internal/core/domain"
)

const collectionLocales = "locales"

// LocaleRepository persists the known language tags. The language itself is
// the document id, which enforces uniqueness.
type LocaleRepository struct {
	col *mongo.Collection
}

func NewLocaleRepository(db *mongo.Database) *LocaleRepository {
	return &LocaleRepository{col: db.Collection(collectionLocales)}
}

func (r *LocaleRepository) List(ctx context.Context) ([]domain.Locale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	locales := []domain.Locale{}
	if err := cur.All(ctx, &locales); err != nil {
		return nil, err
	}
	return locales, nil
}

func (r *LocaleRepository) Exists(ctx context.Context, language string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": language})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create upserts a language tag; creating an existing one is a no-op.
func (r *LocaleRepository) Create(ctx context.Context, language string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": language}, bson.M{"$set": bson.M{"_id": language}}, opts)
	return err
}

func (r *LocaleRepository) Delete(ctx context.Context, language string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": language})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrLocaleNotFound
	}
	return nil
}
