package mongodb

import (
	"context"
	"fmt"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// articleRepo is the document implementation of ArticleRepository
type articleRepo struct {
	articles collection[models.Article]
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *mongo.Database) repository.ArticleRepository {
	return &articleRepo{articles: newCollection[models.Article](db, repository.Articles)}
}

func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	return r.articles.insertMany(ctx, articles)
}

func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.articles.findOne(ctx, byID(id))
}

func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.articles.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

// ListByAuthor returns the articles of one author, newest first
func (r *articleRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	return r.articles.find(ctx, bson.D{{Key: "authorId", Value: authorID}}, newestFirst)
}

func (r *articleRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	return r.articles.exists(ctx, bson.D{{Key: "title", Value: title}})
}

// Update stores the mutable fields of an article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "slug", Value: article.Slug},
		{Key: "title", Value: article.Title},
		{Key: "description", Value: article.Description},
		{Key: "content", Value: article.Content},
		{Key: "updatedAt", Value: article.UpdatedAt},
	}}}

	res, err := r.articles.coll.UpdateOne(ctx, byID(article.ID), update)
	if err != nil {
		return r.articles.translate(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("article %s: %w", article.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *articleRepo) Count(ctx context.Context) (int, error) {
	return r.articles.count(ctx, bson.D{})
}
