package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/realworld-persistence/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Entity  string      `json:"entity"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s.%s: %s (%v)", e.Entity, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

// ValidationErrors collects every problem found in a dataset
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(msgs, "; "))
}

// Validator checks records in insertion order. Each Add* call makes a
// record visible to uniqueness and reference checks of later records.
type Validator struct {
	idCache          map[string]bool
	userEmailCache   map[string]bool
	usernameCache    map[string]bool
	articleSlugCache map[string]bool
	tagNameCache     map[string]bool
	userIDCache      map[string]bool
	articleIDCache   map[string]bool
	pairCache        map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		idCache:          make(map[string]bool),
		userEmailCache:   make(map[string]bool),
		usernameCache:    make(map[string]bool),
		articleSlugCache: make(map[string]bool),
		tagNameCache:     make(map[string]bool),
		userIDCache:      make(map[string]bool),
		articleIDCache:   make(map[string]bool),
		pairCache:        make(map[string]bool),
	}
}

// AddUser registers a user's id, email and username
func (v *Validator) AddUser(user *models.User) {
	v.idCache[user.ID] = true
	v.userIDCache[user.ID] = true
	v.userEmailCache[strings.ToLower(user.Email)] = true
	v.usernameCache[user.Username] = true
}

// AddTag registers a tag name for article tag references
func (v *Validator) AddTag(tag *models.Tag) {
	v.idCache[tag.ID] = true
	v.tagNameCache[tag.Name] = true
}

// AddArticle registers an article's id and slug
func (v *Validator) AddArticle(article *models.Article) {
	v.idCache[article.ID] = true
	v.articleIDCache[article.ID] = true
	v.articleSlugCache[article.Slug] = true
}

// AddLink registers the id and natural keys of a link record
func (v *Validator) AddLink(link models.Entity) {
	v.idCache[link.EntityID()] = true
	for _, k := range link.NaturalKeys() {
		v.pairCache[k.String()] = true
	}
}

// ValidateUser validates a user record
func (v *Validator) ValidateUser(user *models.User) []ValidationError {
	errors := v.validateID("user", user.ID)

	if user.Email == "" {
		errors = append(errors, ValidationError{Entity: "user", Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(user.Email) {
		errors = append(errors, ValidationError{Entity: "user", Field: "email", Message: "invalid email format", Value: user.Email})
	} else if v.userEmailCache[strings.ToLower(user.Email)] {
		errors = append(errors, ValidationError{Entity: "user", Field: "email", Message: "duplicate email", Value: user.Email})
	}

	if user.Username == "" {
		errors = append(errors, ValidationError{Entity: "user", Field: "username", Message: "username is required"})
	} else if v.usernameCache[user.Username] {
		errors = append(errors, ValidationError{Entity: "user", Field: "username", Message: "duplicate username", Value: user.Username})
	}

	if user.Password == "" {
		errors = append(errors, ValidationError{Entity: "user", Field: "password", Message: "password is required"})
	}

	return errors
}

// ValidateTag validates a tag record
func (v *Validator) ValidateTag(tag *models.Tag) []ValidationError {
	errors := v.validateID("tag", tag.ID)

	if tag.Name == "" {
		errors = append(errors, ValidationError{Entity: "tag", Field: "name", Message: "name is required"})
	} else if v.tagNameCache[tag.Name] {
		errors = append(errors, ValidationError{Entity: "tag", Field: "name", Message: "duplicate tag name", Value: tag.Name})
	}

	return errors
}

// ValidateArticle validates an article record
func (v *Validator) ValidateArticle(article *models.Article) []ValidationError {
	errors := v.validateID("article", article.ID)

	if article.Slug == "" {
		errors = append(errors, ValidationError{Entity: "article", Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(article.Slug) {
		errors = append(errors, ValidationError{Entity: "article", Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: article.Slug})
	} else if v.articleSlugCache[article.Slug] {
		errors = append(errors, ValidationError{Entity: "article", Field: "slug", Message: "duplicate slug", Value: article.Slug})
	}

	if article.Title == "" {
		errors = append(errors, ValidationError{Entity: "article", Field: "title", Message: "title is required"})
	}

	if article.Description == "" {
		errors = append(errors, ValidationError{Entity: "article", Field: "description", Message: "description is required"})
	}

	if article.Content == "" {
		errors = append(errors, ValidationError{Entity: "article", Field: "content", Message: "content is required"})
	}

	errors = append(errors, v.validateRef("article", "author_id", article.AuthorID, v.userIDCache, "user")...)

	return errors
}

// ValidateArticleTag validates an article/tag link
func (v *Validator) ValidateArticleTag(link *models.ArticleTag) []ValidationError {
	errors := v.validateID("article_tag", link.ID)
	errors = append(errors, v.validateRef("article_tag", "article_id", link.ArticleID, v.articleIDCache, "article")...)
	errors = append(errors, v.validateRef("article_tag", "tag_name", link.TagName, v.tagNameCache, "tag")...)
	return append(errors, v.validatePair("article_tag", link)...)
}

// ValidateComment validates a comment record
func (v *Validator) ValidateComment(comment *models.ArticleComment) []ValidationError {
	errors := v.validateID("comment", comment.ID)
	errors = append(errors, v.validateRef("comment", "article_id", comment.ArticleID, v.articleIDCache, "article")...)
	errors = append(errors, v.validateRef("comment", "author_id", comment.AuthorID, v.userIDCache, "user")...)

	if comment.Content == "" {
		errors = append(errors, ValidationError{Entity: "comment", Field: "content", Message: "content is required"})
	}

	return errors
}

// ValidateFavorite validates an article favorite
func (v *Validator) ValidateFavorite(fav *models.ArticleFavorite) []ValidationError {
	errors := v.validateID("favorite", fav.ID)
	errors = append(errors, v.validateRef("favorite", "user_id", fav.UserID, v.userIDCache, "user")...)
	errors = append(errors, v.validateRef("favorite", "article_id", fav.ArticleID, v.articleIDCache, "article")...)
	return append(errors, v.validatePair("favorite", fav)...)
}

// ValidateFollow validates a follow relationship
func (v *Validator) ValidateFollow(follow *models.UserFollow) []ValidationError {
	errors := v.validateID("follow", follow.ID)
	errors = append(errors, v.validateRef("follow", "follower_id", follow.FollowerID, v.userIDCache, "user")...)
	errors = append(errors, v.validateRef("follow", "following_id", follow.FollowingID, v.userIDCache, "user")...)
	return append(errors, v.validatePair("follow", follow)...)
}

func (v *Validator) validateID(entity, id string) []ValidationError {
	switch {
	case id == "":
		return []ValidationError{{Entity: entity, Field: "id", Message: "id is required"}}
	case !isValidUUID(id):
		return []ValidationError{{Entity: entity, Field: "id", Message: "invalid UUID format", Value: id}}
	case v.idCache[id]:
		return []ValidationError{{Entity: entity, Field: "id", Message: "duplicate id", Value: id}}
	}
	return nil
}

// validateRef requires value to name a record added earlier
func (v *Validator) validateRef(entity, field, value string, known map[string]bool, target string) []ValidationError {
	switch {
	case value == "":
		return []ValidationError{{Entity: entity, Field: field, Message: field + " is required"}}
	case !known[value]:
		return []ValidationError{{Entity: entity, Field: field, Message: "referenced " + target + " does not exist", Value: value}}
	}
	return nil
}

func (v *Validator) validatePair(entity string, link models.Entity) []ValidationError {
	var errors []ValidationError
	for _, k := range link.NaturalKeys() {
		if v.pairCache[k.String()] {
			errors = append(errors, ValidationError{Entity: entity, Field: k.Name, Message: "duplicate " + entity, Value: k.Value})
		}
	}
	return errors
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
