package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamsite/content-api/internal/core/domain"
)

const (
	collectionMembers  = "members"
	collectionProjects = "projects"
)

// RecordRepository persists members and projects in separate collections, so
// id uniqueness holds per kind independently.
type RecordRepository struct {
	db *mongo.Database
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) col(kind domain.Kind) *mongo.Collection {
	if kind == domain.KindProject {
		return r.db.Collection(collectionProjects)
	}
	return r.db.Collection(collectionMembers)
}

// List returns records of a kind, filtered by locale when non-empty. Results
// follow natural insertion order.
func (r *RecordRepository) List(ctx context.Context, kind domain.Kind, locale string) ([]*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if locale != "" {
		filter["locale"] = locale
	}

	cur, err := r.col(kind).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := []*domain.Record{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RecordRepository) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.Record
	err := r.col(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert dispatches on the resolved write variant.
func (r *RecordRepository) Upsert(ctx context.Context, kind domain.Kind, write domain.RecordWrite) (*domain.Record, error) {
	if write.Op == domain.OpCreate {
		return r.create(ctx, kind, write.Fields)
	}
	return r.update(ctx, kind, write.ID, write.Fields)
}

func (r *RecordRepository) create(ctx context.Context, kind domain.Kind, fields domain.RecordFields) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	rec := &domain.Record{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Description: fields.Description,
		Locale:      fields.Locale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.col(kind).InsertOne(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// update applies only the non-empty fields (partial-update semantics) and
// returns the post-update document.
func (r *RecordRepository) update(ctx context.Context, kind domain.Kind, id string, fields domain.RecordFields) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Name != "" {
		set["name"] = fields.Name
	}
	if fields.Description != "" {
		set["description"] = fields.Description
	}
	if fields.Locale != "" {
		set["locale"] = fields.Locale
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec domain.Record
	err := r.col(kind).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) Delete(ctx context.Context, kind domain.Kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListIDs enumerates every record id of a kind.
func (r *RecordRepository) ListIDs(ctx context.Context, kind domain.Kind) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col(kind).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// EnsureIndexes creates the locale lookup index on both collections.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	index := []mongo.IndexModel{
		{Keys: bson.D{{Key: "locale", Value: 1}}},
	}

	for _, kind := range []domain.Kind{domain.KindMember, domain.KindProject} {
		if _, err := r.col(kind).Indexes().CreateMany(ctx, index); err != nil {
			return err
		}
	}
	return nil
}
