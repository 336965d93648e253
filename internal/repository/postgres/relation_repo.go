package postgres

import (
	"context"

	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

// favoriteRepo is the concrete implementation of FavoriteRepository
type favoriteRepo struct {
	db *database.DB
}

// NewFavoriteRepo creates a new article favorite repository
func NewFavoriteRepo(db *database.DB) repository.FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) BatchInsert(ctx context.Context, favorites []*models.ArticleFavorite) (int, error) {
	return copyInsert(ctx, r.db, repository.Favorites,
		[]string{"id", "article_id", "user_id", "created_at"},
		len(favorites),
		func(i int) []any {
			f := favorites[i]
			return []any{f.ID, f.ArticleID, f.UserID, f.CreatedAt}
		},
	)
}

func (r *favoriteRepo) GetByID(ctx context.Context, id string) (*models.ArticleFavorite, error) {
	return one(ctx, r.db,
		`SELECT id, article_id, user_id, created_at FROM article_favorite WHERE id = $1`,
		scanFavorite, id)
}

func (r *favoriteRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleFavorite, error) {
	return collect(ctx, r.db,
		`SELECT id, article_id, user_id, created_at FROM article_favorite WHERE article_id = $1 ORDER BY created_at`,
		scanFavorite, articleID)
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]*models.ArticleFavorite, error) {
	return collect(ctx, r.db,
		`SELECT id, article_id, user_id, created_at FROM article_favorite WHERE user_id = $1 ORDER BY created_at`,
		scanFavorite, userID)
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	return exists(ctx, r.db,
		"SELECT EXISTS(SELECT 1 FROM article_favorite WHERE user_id = $1 AND article_id = $2)",
		userID, articleID)
}

func (r *favoriteRepo) CountByArticle(ctx context.Context, articleID string) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM article_favorite WHERE article_id = $1", articleID)
}

func (r *favoriteRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM article_favorite")
}

func scanFavorite(s scanner) (*models.ArticleFavorite, error) {
	var f models.ArticleFavorite
	if err := s.Scan(&f.ID, &f.ArticleID, &f.UserID, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// followRepo is the concrete implementation of FollowRepository
type followRepo struct {
	db *database.DB
}

// NewFollowRepo creates a new user follow repository
func NewFollowRepo(db *database.DB) repository.FollowRepository {
	return &followRepo{db: db}
}

func (r *followRepo) BatchInsert(ctx context.Context, follows []*models.UserFollow) (int, error) {
	return copyInsert(ctx, r.db, repository.Follows,
		[]string{"id", "follower_id", "following_id", "created_at"},
		len(follows),
		func(i int) []any {
			f := follows[i]
			return []any{f.ID, f.FollowerID, f.FollowingID, f.CreatedAt}
		},
	)
}

func (r *followRepo) GetByID(ctx context.Context, id string) (*models.UserFollow, error) {
	return one(ctx, r.db,
		`SELECT id, follower_id, following_id, created_at FROM user_follow WHERE id = $1`,
		scanFollow, id)
}

func (r *followRepo) ListByFollower(ctx context.Context, followerID string) ([]*models.UserFollow, error) {
	return collect(ctx, r.db,
		`SELECT id, follower_id, following_id, created_at FROM user_follow WHERE follower_id = $1 ORDER BY created_at`,
		scanFollow, followerID)
}

func (r *followRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return exists(ctx, r.db,
		"SELECT EXISTS(SELECT 1 FROM user_follow WHERE follower_id = $1 AND following_id = $2)",
		followerID, followingID)
}

func (r *followRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM user_follow")
}

func scanFollow(s scanner) (*models.UserFollow, error) {
	var f models.UserFollow
	if err := s.Scan(&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
