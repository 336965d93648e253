package postgres

import (
	"context"

	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) repository.TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) BatchInsert(ctx context.Context, tags []*models.Tag) (int, error) {
	return copyInsert(ctx, r.db, repository.Tags,
		[]string{"id", "name", "created_at"},
		len(tags),
		func(i int) []any {
			return []any{tags[i].ID, tags[i].Name, tags[i].CreatedAt}
		},
	)
}

func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return one(ctx, r.db, `SELECT id, name, created_at FROM tag WHERE id = $1`, scanTag, id)
}

func (r *tagRepo) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return one(ctx, r.db, `SELECT id, name, created_at FROM tag WHERE name = $1`, scanTag, name)
}

// ListAll returns every tag ordered by name
func (r *tagRepo) ListAll(ctx context.Context) ([]*models.Tag, error) {
	return collect(ctx, r.db, `SELECT id, name, created_at FROM tag ORDER BY name`, scanTag)
}

func (r *tagRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM tag")
}

func scanTag(s scanner) (*models.Tag, error) {
	var t models.Tag
	if err := s.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// articleTagRepo is the concrete implementation of ArticleTagRepository
type articleTagRepo struct {
	db *database.DB
}

// NewArticleTagRepo creates a new article/tag link repository
func NewArticleTagRepo(db *database.DB) repository.ArticleTagRepository {
	return &articleTagRepo{db: db}
}

func (r *articleTagRepo) BatchInsert(ctx context.Context, links []*models.ArticleTag) (int, error) {
	return copyInsert(ctx, r.db, repository.ArticleTags,
		[]string{"id", "article_id", "tag_name", "created_at"},
		len(links),
		func(i int) []any {
			l := links[i]
			return []any{l.ID, l.ArticleID, l.TagName, l.CreatedAt}
		},
	)
}

func (r *articleTagRepo) GetByID(ctx context.Context, id string) (*models.ArticleTag, error) {
	return one(ctx, r.db,
		`SELECT id, article_id, tag_name, created_at FROM article_tag WHERE id = $1`,
		scanArticleTag, id)
}

func (r *articleTagRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleTag, error) {
	return collect(ctx, r.db,
		`SELECT id, article_id, tag_name, created_at FROM article_tag WHERE article_id = $1 ORDER BY tag_name`,
		scanArticleTag, articleID)
}

func (r *articleTagRepo) Exists(ctx context.Context, articleID, tagName string) (bool, error) {
	return exists(ctx, r.db,
		"SELECT EXISTS(SELECT 1 FROM article_tag WHERE article_id = $1 AND tag_name = $2)",
		articleID, tagName)
}

func (r *articleTagRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM article_tag")
}

func scanArticleTag(s scanner) (*models.ArticleTag, error) {
	var l models.ArticleTag
	if err := s.Scan(&l.ID, &l.ArticleID, &l.TagName, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
