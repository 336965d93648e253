package mongodb

import (
	"context"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// commentRepo is the document implementation of CommentRepository
type commentRepo struct {
	comments collection[models.ArticleComment]
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *mongo.Database) repository.CommentRepository {
	return &commentRepo{comments: newCollection[models.ArticleComment](db, repository.Comments)}
}

func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.ArticleComment) (int, error) {
	return r.comments.insertMany(ctx, comments)
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.ArticleComment, error) {
	return r.comments.findOne(ctx, byID(id))
}

func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleComment, error) {
	return r.comments.find(ctx, bson.D{{Key: "articleId", Value: articleID}}, newestFirst)
}

func (r *commentRepo) Count(ctx context.Context) (int, error) {
	return r.comments.count(ctx, bson.D{})
}
