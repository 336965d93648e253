package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Collection names one logical entity in both storage representations
type Collection struct {
	Document string
	Table    string
}

var (
	Users       = Collection{Document: "users", Table: "users"}
	Articles    = Collection{Document: "article", Table: "article"}
	Tags        = Collection{Document: "tag", Table: "tag"}
	ArticleTags = Collection{Document: "articleTag", Table: "article_tag"}
	Comments    = Collection{Document: "articleComment", Table: "article_comment"}
	Favorites   = Collection{Document: "articleFavorite", Table: "article_favorite"}
	Follows     = Collection{Document: "userFollow", Table: "user_follow"}
)

// Collections lists every collection in seed insertion order
var Collections = []Collection{Users, Tags, Articles, ArticleTags, Comments, Favorites, Follows}

// IndexSpec declares a lookup or uniqueness index shared by all backends
type IndexSpec struct {
	Name       string
	Collection Collection
	Fields     []string // document field names
	Columns    []string // relational column names
	Unique     bool
}

// Indexes is the full set of declared indexes
var Indexes = []IndexSpec{
	{Name: "users_email_key", Collection: Users, Fields: []string{"email"}, Columns: []string{"email"}, Unique: true},
	{Name: "users_username_key", Collection: Users, Fields: []string{"username"}, Columns: []string{"username"}, Unique: true},
	{Name: "article_slug_key", Collection: Articles, Fields: []string{"slug"}, Columns: []string{"slug"}, Unique: true},
	{Name: "article_author_id_idx", Collection: Articles, Fields: []string{"authorId"}, Columns: []string{"author_id"}},
	{
		Name:       "article_favorite_user_article_key",
		Collection: Favorites,
		Fields:     []string{"userId", "articleId"},
		Columns:    []string{"user_id", "article_id"},
		Unique:     true,
	},
	{
		Name:       "article_tag_article_tag_name_key",
		Collection: ArticleTags,
		Fields:     []string{"articleId", "tagName"},
		Columns:    []string{"article_id", "tag_name"},
		Unique:     true,
	},
	{Name: "article_comment_article_id_idx", Collection: Comments, Fields: []string{"articleId"}, Columns: []string{"article_id"}},
	{
		Name:       "user_follow_follower_following_key",
		Collection: Follows,
		Fields:     []string{"followerId", "followingId"},
		Columns:    []string{"follower_id", "following_id"},
		Unique:     true,
	},
}

// IndexesFor returns the declared indexes of one collection
func IndexesFor(c Collection) []IndexSpec {
	var specs []IndexSpec
	for _, spec := range Indexes {
		if spec.Collection == c {
			specs = append(specs, spec)
		}
	}
	return specs
}

var (
	// ErrDuplicateKey is matched by every unique constraint violation
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned by updates of records that do not exist.
	// Lookups return nil, nil instead.
	ErrNotFound = errors.New("not found")
)

// ConstraintError reports a unique constraint violation on insert
type ConstraintError struct {
	Collection string
	Key        string // offending key when the backend reports it
	Err        error  // underlying driver error, may be nil
}

func (e *ConstraintError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: duplicate key", e.Collection)
	if e.Key != "" {
		fmt.Fprintf(&b, " %s", e.Key)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDuplicateKey}
	}
	return []error{ErrDuplicateKey, e.Err}
}
