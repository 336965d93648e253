package mocks

import (
	"context"
	"fmt"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

// userRepo is the in-memory implementation of UserRepository
type userRepo struct {
	t *table[*models.User]
}

func (m *userRepo) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	return m.t.insert(users)
}

func (m *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.t.get(func(u *models.User) bool { return u.ID == id }), nil
}

func (m *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.t.get(func(u *models.User) bool { return u.Email == email }), nil
}

func (m *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.t.get(func(u *models.User) bool { return u.Username == username }), nil
}

func (m *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

func (m *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	u, _ := m.GetByUsername(ctx, username)
	return u != nil, nil
}

func (m *userRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.User]), nil
}

func newestArticle(a, b *models.Article) bool { return a.CreatedAt.After(b.CreatedAt) }

// articleRepo is the in-memory implementation of ArticleRepository
type articleRepo struct {
	t *table[*models.Article]
}

func (m *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	return m.t.insert(articles)
}

func (m *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.t.get(func(a *models.Article) bool { return a.ID == id }), nil
}

func (m *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return m.t.get(func(a *models.Article) bool { return a.Slug == slug }), nil
}

func (m *articleRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	return m.t.find(func(a *models.Article) bool { return a.AuthorID == authorID }, newestArticle), nil
}

func (m *articleRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	return m.t.get(func(a *models.Article) bool { return a.Title == title }) != nil, nil
}

func (m *articleRepo) Update(ctx context.Context, article *models.Article) error {
	m.t.s.mu.Lock()
	defer m.t.s.mu.Unlock()

	for i, row := range m.t.rows {
		if row.ID != article.ID {
			continue
		}
		if row.Slug != article.Slug {
			key := article.NaturalKeys()[0].String()
			if m.t.s.indexed && m.t.keys[key] > 0 {
				return &repository.ConstraintError{Collection: m.t.coll.Document, Key: key}
			}
			m.t.keys[row.NaturalKeys()[0].String()]--
			m.t.keys[key]++
		}
		updated := *row
		updated.Slug = article.Slug
		updated.Title = article.Title
		updated.Description = article.Description
		updated.Content = article.Content
		updated.UpdatedAt = article.UpdatedAt
		m.t.rows[i] = &updated
		return nil
	}
	return fmt.Errorf("article %s: %w", article.ID, repository.ErrNotFound)
}

func (m *articleRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.Article]), nil
}

// tagRepo is the in-memory implementation of TagRepository
type tagRepo struct {
	t *table[*models.Tag]
}

func (m *tagRepo) BatchInsert(ctx context.Context, tags []*models.Tag) (int, error) {
	return m.t.insert(tags)
}

func (m *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return m.t.get(func(t *models.Tag) bool { return t.ID == id }), nil
}

func (m *tagRepo) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return m.t.get(func(t *models.Tag) bool { return t.Name == name }), nil
}

func (m *tagRepo) ListAll(ctx context.Context) ([]*models.Tag, error) {
	return m.t.find(all[*models.Tag], func(a, b *models.Tag) bool { return a.Name < b.Name }), nil
}

func (m *tagRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.Tag]), nil
}

// articleTagRepo is the in-memory implementation of ArticleTagRepository
type articleTagRepo struct {
	t *table[*models.ArticleTag]
}

func (m *articleTagRepo) BatchInsert(ctx context.Context, links []*models.ArticleTag) (int, error) {
	return m.t.insert(links)
}

func (m *articleTagRepo) GetByID(ctx context.Context, id string) (*models.ArticleTag, error) {
	return m.t.get(func(l *models.ArticleTag) bool { return l.ID == id }), nil
}

func (m *articleTagRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleTag, error) {
	return m.t.find(
		func(l *models.ArticleTag) bool { return l.ArticleID == articleID },
		func(a, b *models.ArticleTag) bool { return a.TagName < b.TagName },
	), nil
}

func (m *articleTagRepo) Exists(ctx context.Context, articleID, tagName string) (bool, error) {
	l := m.t.get(func(l *models.ArticleTag) bool { return l.ArticleID == articleID && l.TagName == tagName })
	return l != nil, nil
}

func (m *articleTagRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.ArticleTag]), nil
}

// commentRepo is the in-memory implementation of CommentRepository
type commentRepo struct {
	t *table[*models.ArticleComment]
}

func (m *commentRepo) BatchInsert(ctx context.Context, comments []*models.ArticleComment) (int, error) {
	return m.t.insert(comments)
}

func (m *commentRepo) GetByID(ctx context.Context, id string) (*models.ArticleComment, error) {
	return m.t.get(func(c *models.ArticleComment) bool { return c.ID == id }), nil
}

func (m *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleComment, error) {
	return m.t.find(
		func(c *models.ArticleComment) bool { return c.ArticleID == articleID },
		func(a, b *models.ArticleComment) bool { return a.CreatedAt.After(b.CreatedAt) },
	), nil
}

func (m *commentRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.ArticleComment]), nil
}

func oldestFavorite(a, b *models.ArticleFavorite) bool { return a.CreatedAt.Before(b.CreatedAt) }

// favoriteRepo is the in-memory implementation of FavoriteRepository
type favoriteRepo struct {
	t *table[*models.ArticleFavorite]
}

func (m *favoriteRepo) BatchInsert(ctx context.Context, favorites []*models.ArticleFavorite) (int, error) {
	return m.t.insert(favorites)
}

func (m *favoriteRepo) GetByID(ctx context.Context, id string) (*models.ArticleFavorite, error) {
	return m.t.get(func(f *models.ArticleFavorite) bool { return f.ID == id }), nil
}

func (m *favoriteRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleFavorite, error) {
	return m.t.find(func(f *models.ArticleFavorite) bool { return f.ArticleID == articleID }, oldestFavorite), nil
}

func (m *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]*models.ArticleFavorite, error) {
	return m.t.find(func(f *models.ArticleFavorite) bool { return f.UserID == userID }, oldestFavorite), nil
}

func (m *favoriteRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	f := m.t.get(func(f *models.ArticleFavorite) bool { return f.UserID == userID && f.ArticleID == articleID })
	return f != nil, nil
}

func (m *favoriteRepo) CountByArticle(ctx context.Context, articleID string) (int, error) {
	return m.t.count(func(f *models.ArticleFavorite) bool { return f.ArticleID == articleID }), nil
}

func (m *favoriteRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.ArticleFavorite]), nil
}

// followRepo is the in-memory implementation of FollowRepository
type followRepo struct {
	t *table[*models.UserFollow]
}

func (m *followRepo) BatchInsert(ctx context.Context, follows []*models.UserFollow) (int, error) {
	return m.t.insert(follows)
}

func (m *followRepo) GetByID(ctx context.Context, id string) (*models.UserFollow, error) {
	return m.t.get(func(f *models.UserFollow) bool { return f.ID == id }), nil
}

func (m *followRepo) ListByFollower(ctx context.Context, followerID string) ([]*models.UserFollow, error) {
	return m.t.find(
		func(f *models.UserFollow) bool { return f.FollowerID == followerID },
		func(a, b *models.UserFollow) bool { return a.CreatedAt.Before(b.CreatedAt) },
	), nil
}

func (m *followRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	f := m.t.get(func(f *models.UserFollow) bool { return f.FollowerID == followerID && f.FollowingID == followingID })
	return f != nil, nil
}

func (m *followRepo) Count(ctx context.Context) (int, error) {
	return m.t.count(all[*models.UserFollow]), nil
}
