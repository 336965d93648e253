package models

import (
	"time"
)

// Tag is a label that can be attached to articles
type Tag struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	Name      string    `json:"name" db:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
}

// ArticleTag links an article to a tag by the tag's name
type ArticleTag struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	ArticleID string    `json:"article_id" db:"article_id" bson:"articleId"`
	TagName   string    `json:"tag_name" db:"tag_name" bson:"tagName"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
}

func NewTag(name string) (*Tag, error) {
	t := &Tag{ID: NewID(), Name: name, CreatedAt: now()}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tag) EntityID() string { return t.ID }

func (t *Tag) Validate() error {
	return firstError(
		required("tag", "id", t.ID),
		required("tag", "name", t.Name),
	)
}

// NaturalKeys is empty: no document index covers tag names. The relational
// schema keeps its own unique constraint for the article_tag foreign key.
func (t *Tag) NaturalKeys() []NaturalKey {
	return nil
}

func NewArticleTag(articleID, tagName string) (*ArticleTag, error) {
	at := &ArticleTag{ID: NewID(), ArticleID: articleID, TagName: tagName, CreatedAt: now()}
	if err := at.Validate(); err != nil {
		return nil, err
	}
	return at, nil
}

func (at *ArticleTag) EntityID() string { return at.ID }

func (at *ArticleTag) Validate() error {
	return firstError(
		required("article_tag", "id", at.ID),
		required("article_tag", "article_id", at.ArticleID),
		required("article_tag", "tag_name", at.TagName),
	)
}

func (at *ArticleTag) NaturalKeys() []NaturalKey {
	return []NaturalKey{pairKey("articleId+tagName", at.ArticleID, at.TagName)}
}
