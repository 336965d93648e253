package models

import (
	"time"
)

// ArticleFavorite records that a user favorited an article
type ArticleFavorite struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	ArticleID string    `json:"article_id" db:"article_id" bson:"articleId"`
	UserID    string    `json:"user_id" db:"user_id" bson:"userId"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
}

// UserFollow records that follower follows following
type UserFollow struct {
	ID          string    `json:"id" db:"id" bson:"_id"`
	FollowerID  string    `json:"follower_id" db:"follower_id" bson:"followerId"`
	FollowingID string    `json:"following_id" db:"following_id" bson:"followingId"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
}

func NewArticleFavorite(userID, articleID string) (*ArticleFavorite, error) {
	f := &ArticleFavorite{ID: NewID(), ArticleID: articleID, UserID: userID, CreatedAt: now()}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *ArticleFavorite) EntityID() string { return f.ID }

func (f *ArticleFavorite) Validate() error {
	return firstError(
		required("article_favorite", "id", f.ID),
		required("article_favorite", "user_id", f.UserID),
		required("article_favorite", "article_id", f.ArticleID),
	)
}

func (f *ArticleFavorite) NaturalKeys() []NaturalKey {
	return []NaturalKey{pairKey("userId+articleId", f.UserID, f.ArticleID)}
}

func NewUserFollow(followerID, followingID string) (*UserFollow, error) {
	uf := &UserFollow{ID: NewID(), FollowerID: followerID, FollowingID: followingID, CreatedAt: now()}
	if err := uf.Validate(); err != nil {
		return nil, err
	}
	return uf, nil
}

func (uf *UserFollow) EntityID() string { return uf.ID }

func (uf *UserFollow) Validate() error {
	return firstError(
		required("user_follow", "id", uf.ID),
		required("user_follow", "follower_id", uf.FollowerID),
		required("user_follow", "following_id", uf.FollowingID),
	)
}

func (uf *UserFollow) NaturalKeys() []NaturalKey {
	return []NaturalKey{pairKey("followerId+followingId", uf.FollowerID, uf.FollowingID)}
}
