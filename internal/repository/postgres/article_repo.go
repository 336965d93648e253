package postgres

import (
	"context"
	"fmt"

	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

const articleColumns = `id, slug, title, description, content, author_id, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) repository.ArticleRepository {
	return &articleRepo{db: db}
}

// BatchInsert inserts articles using PostgreSQL COPY
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	return copyInsert(ctx, r.db, repository.Articles,
		[]string{"id", "slug", "title", "description", "content", "author_id", "created_at", "updated_at"},
		len(articles),
		func(i int) []any {
			a := articles[i]
			return []any{a.ID, a.Slug, a.Title, a.Description, a.Content, a.AuthorID, a.CreatedAt, a.UpdatedAt}
		},
	)
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return one(ctx, r.db, `SELECT `+articleColumns+` FROM article WHERE id = $1`, scanArticle, id)
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return one(ctx, r.db, `SELECT `+articleColumns+` FROM article WHERE slug = $1`, scanArticle, slug)
}

// ListByAuthor returns an author's articles, newest first
func (r *articleRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	return collect(ctx, r.db,
		`SELECT `+articleColumns+` FROM article WHERE author_id = $1 ORDER BY created_at DESC`,
		scanArticle, authorID)
}

// TitleExists checks if an article with the given title exists
func (r *articleRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	return exists(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM article WHERE title = $1)", title)
}

// Update stores the mutable fields of an article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE article
		SET slug = $2, title = $3, description = $4, content = $5, updated_at = $6
		WHERE id = $1
	`, article.ID, article.Slug, article.Title, article.Description, article.Content, article.UpdatedAt)
	if err != nil {
		return translate(repository.Articles, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article %s: %w", article.ID, repository.ErrNotFound)
	}
	return nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM article")
}

func scanArticle(s scanner) (*models.Article, error) {
	var a models.Article
	err := s.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Description, &a.Content, &a.AuthorID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
