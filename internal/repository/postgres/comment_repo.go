package postgres

import (
	"context"

	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

const commentColumns = `id, article_id, author_id, content, created_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) repository.CommentRepository {
	return &commentRepo{db: db}
}

// BatchInsert inserts comments using PostgreSQL COPY
func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.ArticleComment) (int, error) {
	return copyInsert(ctx, r.db, repository.Comments,
		[]string{"id", "article_id", "author_id", "content", "created_at"},
		len(comments),
		func(i int) []any {
			c := comments[i]
			return []any{c.ID, c.ArticleID, c.AuthorID, c.Content, c.CreatedAt}
		},
	)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.ArticleComment, error) {
	return one(ctx, r.db, `SELECT `+commentColumns+` FROM article_comment WHERE id = $1`, scanComment, id)
}

func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleComment, error) {
	return collect(ctx, r.db,
		`SELECT `+commentColumns+` FROM article_comment WHERE article_id = $1 ORDER BY created_at DESC`,
		scanComment, articleID)
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM article_comment")
}

func scanComment(s scanner) (*models.ArticleComment, error) {
	var c models.ArticleComment
	if err := s.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
