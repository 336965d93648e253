package mongodb

import (
	"context"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepo is the document implementation of UserRepository
type userRepo struct {
	users collection[models.User]
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) repository.UserRepository {
	return &userRepo{users: newCollection[models.User](db, repository.Users)}
}

func (r *userRepo) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	return r.users.insertMany(ctx, users)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.users.findOne(ctx, byID(id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.users.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.users.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.users.exists(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.users.exists(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	return r.users.count(ctx, bson.D{})
}
