package mongodb

import (
	"context"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var oldestFirst = bson.D{{Key: "createdAt", Value: 1}}

// favoriteRepo is the document implementation of FavoriteRepository
type favoriteRepo struct {
	favorites collection[models.ArticleFavorite]
}

// NewFavoriteRepo creates a new article favorite repository
func NewFavoriteRepo(db *mongo.Database) repository.FavoriteRepository {
	return &favoriteRepo{favorites: newCollection[models.ArticleFavorite](db, repository.Favorites)}
}

func (r *favoriteRepo) BatchInsert(ctx context.Context, favorites []*models.ArticleFavorite) (int, error) {
	return r.favorites.insertMany(ctx, favorites)
}

func (r *favoriteRepo) GetByID(ctx context.Context, id string) (*models.ArticleFavorite, error) {
	return r.favorites.findOne(ctx, byID(id))
}

func (r *favoriteRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleFavorite, error) {
	return r.favorites.find(ctx, bson.D{{Key: "articleId", Value: articleID}}, oldestFirst)
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]*models.ArticleFavorite, error) {
	return r.favorites.find(ctx, bson.D{{Key: "userId", Value: userID}}, oldestFirst)
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	return r.favorites.exists(ctx, bson.D{
		{Key: "userId", Value: userID},
		{Key: "articleId", Value: articleID},
	})
}

func (r *favoriteRepo) CountByArticle(ctx context.Context, articleID string) (int, error) {
	return r.favorites.count(ctx, bson.D{{Key: "articleId", Value: articleID}})
}

func (r *favoriteRepo) Count(ctx context.Context) (int, error) {
	return r.favorites.count(ctx, bson.D{})
}

// followRepo is the document implementation of FollowRepository
type followRepo struct {
	follows collection[models.UserFollow]
}

// NewFollowRepo creates a new user follow repository
func NewFollowRepo(db *mongo.Database) repository.FollowRepository {
	return &followRepo{follows: newCollection[models.UserFollow](db, repository.Follows)}
}

func (r *followRepo) BatchInsert(ctx context.Context, follows []*models.UserFollow) (int, error) {
	return r.follows.insertMany(ctx, follows)
}

func (r *followRepo) GetByID(ctx context.Context, id string) (*models.UserFollow, error) {
	return r.follows.findOne(ctx, byID(id))
}

func (r *followRepo) ListByFollower(ctx context.Context, followerID string) ([]*models.UserFollow, error) {
	return r.follows.find(ctx, bson.D{{Key: "followerId", Value: followerID}}, oldestFirst)
}

func (r *followRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return r.follows.exists(ctx, bson.D{
		{Key: "followerId", Value: followerID},
		{Key: "followingId", Value: followingID},
	})
}

func (r *followRepo) Count(ctx context.Context) (int, error) {
	return r.follows.count(ctx, bson.D{})
}
