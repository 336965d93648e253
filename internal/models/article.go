package models

import (
	"time"
)

// Article represents a blog post written by a user
type Article struct {
	ID          string    `json:"id" db:"id" bson:"_id"`
	Slug        string    `json:"slug" db:"slug" bson:"slug"`
	Title       string    `json:"title" db:"title" bson:"title"`
	Description string    `json:"description" db:"description" bson:"description"`
	Content     string    `json:"body" db:"content" bson:"content"`
	AuthorID    string    `json:"author_id" db:"author_id" bson:"authorId"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" bson:"updatedAt"`
}

// NewArticle creates an article; the slug is derived from the title
func NewArticle(authorID, title, description, content string) (*Article, error) {
	ts := now()
	a := &Article{
		ID:          NewID(),
		Slug:        Slugify(title),
		Title:       title,
		Description: description,
		Content:     content,
		AuthorID:    authorID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Article) EntityID() string { return a.ID }

// Validate checks that all required fields are present
func (a *Article) Validate() error {
	return firstError(
		required("article", "id", a.ID),
		required("article", "slug", a.Slug),
		required("article", "title", a.Title),
		required("article", "description", a.Description),
		required("article", "content", a.Content),
		required("article", "author_id", a.AuthorID),
	)
}

func (a *Article) NaturalKeys() []NaturalKey {
	return []NaturalKey{{Name: "slug", Value: a.Slug}}
}

// SetTitle replaces the title and recomputes the slug
func (a *Article) SetTitle(title string) error {
	if err := required("article", "title", title); err != nil {
		return err
	}
	a.Title = title
	a.Slug = Slugify(title)
	a.UpdatedAt = now()
	return nil
}

func (a *Article) SetDescription(description string) error {
	if err := required("article", "description", description); err != nil {
		return err
	}
	a.Description = description
	a.UpdatedAt = now()
	return nil
}

func (a *Article) SetContent(content string) error {
	if err := required("article", "content", content); err != nil {
		return err
	}
	a.Content = content
	a.UpdatedAt = now()
	return nil
}
