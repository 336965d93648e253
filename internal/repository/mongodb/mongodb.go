// Package mongodb implements the repositories on MongoDB collections.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const backendName = "mongodb"

// New creates every repository on top of db
func New(db *mongo.Database, log zerolog.Logger) *repository.Store {
	repos := repository.Repositories{
		User:       NewUserRepo(db),
		Article:    NewArticleRepo(db),
		Tag:        NewTagRepo(db),
		ArticleTag: NewArticleTagRepo(db),
		Comment:    NewCommentRepo(db),
		Favorite:   NewFavoriteRepo(db),
		Follow:     NewFollowRepo(db),
	}
	return repository.NewStore(repos, &backend{
		db:  db,
		log: log.With().Str("backend", backendName).Logger(),
	})
}

type backend struct {
	db  *mongo.Database
	log zerolog.Logger
}

func (b *backend) Name() string {
	return backendName
}

// Reset drops every collection together with its indexes.
// Dropping a collection that does not exist succeeds.
func (b *backend) Reset(ctx context.Context) error {
	for _, c := range repository.Collections {
		if err := b.db.Collection(c.Document).Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop %s: %w", c.Document, err)
		}
		b.log.Debug().Str("collection", c.Document).Msg("Collection dropped")
	}
	return nil
}

func (b *backend) EnsureIndexes(ctx context.Context) error {
	for _, spec := range repository.Indexes {
		if _, err := b.db.Collection(spec.Collection.Document).Indexes().CreateOne(ctx, indexModel(spec)); err != nil {
			return fmt.Errorf("failed to create index %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (b *backend) HealthCheck(ctx context.Context) error {
	return b.db.Client().Ping(ctx, readpref.Primary())
}

func (b *backend) Close(ctx context.Context) error {
	return b.db.Client().Disconnect(ctx)
}

func indexModel(spec repository.IndexSpec) mongo.IndexModel {
	keys := bson.D{}
	for _, f := range spec.Fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}

	opts := options.Index().SetName(spec.Name)
	if spec.Unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: keys, Options: opts}
}

// collection holds the typed operations shared by every repository
type collection[T any] struct {
	coll *mongo.Collection
	name repository.Collection
}

func newCollection[T any](db *mongo.Database, name repository.Collection) collection[T] {
	return collection[T]{coll: db.Collection(name.Document), name: name}
}

// insertMany performs an ordered insert: the first failing document
// stops the batch.
func (c collection[T]) insertMany(ctx context.Context, docs []*T) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = d
	}

	res, err := c.coll.InsertMany(ctx, batch)
	if err != nil {
		return insertedBefore(err), c.translate(err)
	}
	return len(res.InsertedIDs), nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.D) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name.Document, err)
	}
	return &doc, nil
}

func (c collection[T]) find(ctx context.Context, filter bson.D, sort bson.D) ([]*T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name.Document, err)
	}
	defer cur.Close(ctx)

	var docs []*T
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	return docs, cur.Err()
}

func (c collection[T]) exists(ctx context.Context, filter bson.D) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.name.Document, err)
	}
	return n > 0, nil
}

func (c collection[T]) count(ctx context.Context, filter bson.D) (int, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.name.Document, err)
	}
	return int(n), nil
}

var dupIndexRegex = regexp.MustCompile(`index: (\S+)`)

func (c collection[T]) translate(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", c.name.Document, err)
	}

	key := ""
	if m := dupIndexRegex.FindStringSubmatch(err.Error()); m != nil {
		key = m[1]
	}
	return &repository.ConstraintError{Collection: c.name.Document, Key: key, Err: err}
}

// insertedBefore reports how many documents of an ordered batch were
// written before the first write error.
func insertedBefore(err error) int {
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
		return bwe.WriteErrors[0].Index
	}
	return 0
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}
