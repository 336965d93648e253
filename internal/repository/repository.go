package repository

import (
	"context"

	"github.com/realworld-persistence/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	BatchInsert(ctx context.Context, articles []*models.Article) (int, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Article, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	Update(ctx context.Context, article *models.Article) error
	Count(ctx context.Context) (int, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	BatchInsert(ctx context.Context, tags []*models.Tag) (int, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	ListAll(ctx context.Context) ([]*models.Tag, error)
	Count(ctx context.Context) (int, error)
}

// ArticleTagRepository defines the interface for article/tag links
type ArticleTagRepository interface {
	BatchInsert(ctx context.Context, links []*models.ArticleTag) (int, error)
	GetByID(ctx context.Context, id string) (*models.ArticleTag, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleTag, error)
	Exists(ctx context.Context, articleID, tagName string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	BatchInsert(ctx context.Context, comments []*models.ArticleComment) (int, error)
	GetByID(ctx context.Context, id string) (*models.ArticleComment, error)
	// ListByArticle returns the comments of an article, newest first
	ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleComment, error)
	Count(ctx context.Context) (int, error)
}

// FavoriteRepository defines the interface for article favorites
type FavoriteRepository interface {
	BatchInsert(ctx context.Context, favorites []*models.ArticleFavorite) (int, error)
	GetByID(ctx context.Context, id string) (*models.ArticleFavorite, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleFavorite, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ArticleFavorite, error)
	Exists(ctx context.Context, userID, articleID string) (bool, error)
	CountByArticle(ctx context.Context, articleID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// FollowRepository defines the interface for user follow relationships
type FollowRepository interface {
	BatchInsert(ctx context.Context, follows []*models.UserFollow) (int, error)
	GetByID(ctx context.Context, id string) (*models.UserFollow, error)
	ListByFollower(ctx context.Context, followerID string) ([]*models.UserFollow, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Article    ArticleRepository
	Tag        TagRepository
	ArticleTag ArticleTagRepository
	Comment    CommentRepository
	Favorite   FavoriteRepository
	Follow     FollowRepository
}

// Backend manages the storage engine behind a set of repositories
type Backend interface {
	Name() string
	// Reset empties every collection. Missing collections are not an error.
	Reset(ctx context.Context) error
	// EnsureIndexes declares Indexes on the storage engine
	EnsureIndexes(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store is one storage backend together with its repositories
type Store struct {
	Repositories
	Backend
}

// NewStore bundles repositories with the backend that owns them
func NewStore(repos Repositories, backend Backend) *Store {
	return &Store{Repositories: repos, Backend: backend}
}
