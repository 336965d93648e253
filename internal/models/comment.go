package models

import (
	"time"
)

// ArticleComment represents a comment left on an article
type ArticleComment struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	ArticleID string    `json:"article_id" db:"article_id" bson:"articleId"`
	AuthorID  string    `json:"author_id" db:"author_id" bson:"authorId"`
	Content   string    `json:"body" db:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
}

func NewArticleComment(articleID, authorID, content string) (*ArticleComment, error) {
	c := &ArticleComment{
		ID:        NewID(),
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ArticleComment) EntityID() string { return c.ID }

func (c *ArticleComment) Validate() error {
	return firstError(
		required("article_comment", "id", c.ID),
		required("article_comment", "article_id", c.ArticleID),
		required("article_comment", "author_id", c.AuthorID),
		required("article_comment", "content", c.Content),
	)
}

// NaturalKeys is empty: comments are only unique by id
func (c *ArticleComment) NaturalKeys() []NaturalKey {
	return nil
}
