package mongodb

import (
	"context"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// tagRepo is the document implementation of TagRepository
type tagRepo struct {
	tags collection[models.Tag]
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *mongo.Database) repository.TagRepository {
	return &tagRepo{tags: newCollection[models.Tag](db, repository.Tags)}
}

func (r *tagRepo) BatchInsert(ctx context.Context, tags []*models.Tag) (int, error) {
	return r.tags.insertMany(ctx, tags)
}

func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return r.tags.findOne(ctx, byID(id))
}

func (r *tagRepo) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return r.tags.findOne(ctx, bson.D{{Key: "name", Value: name}})
}

// ListAll returns every tag ordered by name
func (r *tagRepo) ListAll(ctx context.Context) ([]*models.Tag, error) {
	return r.tags.find(ctx, bson.D{}, bson.D{{Key: "name", Value: 1}})
}

func (r *tagRepo) Count(ctx context.Context) (int, error) {
	return r.tags.count(ctx, bson.D{})
}

// articleTagRepo is the document implementation of ArticleTagRepository
type articleTagRepo struct {
	links collection[models.ArticleTag]
}

// NewArticleTagRepo creates a new article/tag link repository
func NewArticleTagRepo(db *mongo.Database) repository.ArticleTagRepository {
	return &articleTagRepo{links: newCollection[models.ArticleTag](db, repository.ArticleTags)}
}

func (r *articleTagRepo) BatchInsert(ctx context.Context, links []*models.ArticleTag) (int, error) {
	return r.links.insertMany(ctx, links)
}

func (r *articleTagRepo) GetByID(ctx context.Context, id string) (*models.ArticleTag, error) {
	return r.links.findOne(ctx, byID(id))
}

func (r *articleTagRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleTag, error) {
	return r.links.find(ctx, bson.D{{Key: "articleId", Value: articleID}}, bson.D{{Key: "tagName", Value: 1}})
}

func (r *articleTagRepo) Exists(ctx context.Context, articleID, tagName string) (bool, error) {
	return r.links.exists(ctx, bson.D{
		{Key: "articleId", Value: articleID},
		{Key: "tagName", Value: tagName},
	})
}

func (r *articleTagRepo) Count(ctx context.Context) (int, error) {
	return r.links.count(ctx, bson.D{})
}
