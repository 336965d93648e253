// Package seed resets a store and loads the fixed RealWorld sample dataset.
package seed

import (
	"time"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/validation"
)

// DemoPasswordHash is the bcrypt hash stored for every sample user
const DemoPasswordHash = "$2a$10$8KzaNdKwIYwtNgMjG/IR9u.Cm1Vj9rKPPGiJup.O6nqfRxJoqkQZa"

// IDs binds every sample record to its id before any record is built,
// so links reference records by name rather than by position.
type IDs struct {
	Jane, John, Mary string

	TagMongoDB, TagJava, TagSpring, TagWebdev, TagProgramming string

	ArticleMongoSpring, ArticleJava21, ArticleRestAPIs string

	MongoSpringTag, MongoSpringSpringTag, Java21JavaTag, RestAPIsSpringTag, RestAPIsWebdevTag string

	CommentJohnOnMongo, CommentMaryOnMongo, CommentJaneOnJava, CommentJohnOnREST string

	FavJohnMongo, FavMaryMongo, FavJaneJava string

	FollowJohnJane, FollowMaryJane, FollowJaneJohn string
}

// AllocateIDs draws every id from gen up front
func AllocateIDs(gen func() string) IDs {
	var ids IDs
	for _, field := range []*string{
		&ids.Jane, &ids.John, &ids.Mary,
		&ids.TagMongoDB, &ids.TagJava, &ids.TagSpring, &ids.TagWebdev, &ids.TagProgramming,
		&ids.ArticleMongoSpring, &ids.ArticleJava21, &ids.ArticleRestAPIs,
		&ids.MongoSpringTag, &ids.MongoSpringSpringTag, &ids.Java21JavaTag, &ids.RestAPIsSpringTag, &ids.RestAPIsWebdevTag,
		&ids.CommentJohnOnMongo, &ids.CommentMaryOnMongo, &ids.CommentJaneOnJava, &ids.CommentJohnOnREST,
		&ids.FavJohnMongo, &ids.FavMaryMongo, &ids.FavJaneJava,
		&ids.FollowJohnJane, &ids.FollowMaryJane, &ids.FollowJaneJohn,
	} {
		*field = gen()
	}
	return ids
}

// Dataset holds the sample records in insertion order
type Dataset struct {
	Users       []*models.User
	Tags        []*models.Tag
	Articles    []*models.Article
	ArticleTags []*models.ArticleTag
	Comments    []*models.ArticleComment
	Favorites   []*models.ArticleFavorite
	Follows     []*models.UserFollow
}

// NewDataset builds the sample dataset with fresh ids stamped at the current time
func NewDataset() *Dataset {
	return Build(AllocateIDs(models.NewID), time.Now().UTC())
}

// Build returns the sample dataset for the given ids. The second and third
// articles are dated one and two days before now.
func Build(ids IDs, now time.Time) *Dataset {
	day := 24 * time.Hour

	return &Dataset{
		Users: []*models.User{
			user(ids.Jane, "jane@example.com", "jane", "I work at the coffee shop", "https://api.realworld.io/images/demo-avatar.png", now),
			user(ids.John, "john@example.com", "john", "Software developer and tech enthusiast", "https://api.realworld.io/images/smiley-cyrus.jpeg", now),
			user(ids.Mary, "mary@example.com", "mary", "Writer and blogger", "", now),
		},
		Tags: []*models.Tag{
			{ID: ids.TagMongoDB, Name: "mongodb", CreatedAt: now},
			{ID: ids.TagJava, Name: "java", CreatedAt: now},
			{ID: ids.TagSpring, Name: "spring", CreatedAt: now},
			{ID: ids.TagWebdev, Name: "webdev", CreatedAt: now},
			{ID: ids.TagProgramming, Name: "programming", CreatedAt: now},
		},
		Articles: []*models.Article{
			article(ids.ArticleMongoSpring, ids.Jane,
				"how-to-use-mongodb-with-spring-boot",
				"MongoDB with Spring Boot",
				"How to use MongoDB with Spring Boot",
				"This is a detailed guide on integrating MongoDB with Spring Boot applications. MongoDB is a document database that offers high performance, high availability, and easy scalability.",
				now),
			article(ids.ArticleJava21, ids.John,
				"introduction-to-java-21-features",
				"Java 21 Features",
				"Introduction to Java 21 features",
				"Java 21 brings exciting new features including virtual threads, pattern matching for switch expressions, record patterns, and more. This article explores these features with practical examples.",
				now.Add(-day)),
			article(ids.ArticleRestAPIs, ids.Mary,
				"building-restful-apis-with-spring-boot",
				"RESTful APIs with Spring Boot",
				"Building RESTful APIs with Spring Boot",
				"This article demonstrates how to build production-ready RESTful APIs using Spring Boot. We'll cover request handling, response formatting, error handling, and documentation.",
				now.Add(-2*day)),
		},
		ArticleTags: []*models.ArticleTag{
			{ID: ids.MongoSpringTag, ArticleID: ids.ArticleMongoSpring, TagName: "mongodb", CreatedAt: now},
			{ID: ids.MongoSpringSpringTag, ArticleID: ids.ArticleMongoSpring, TagName: "spring", CreatedAt: now},
			{ID: ids.Java21JavaTag, ArticleID: ids.ArticleJava21, TagName: "java", CreatedAt: now},
			{ID: ids.RestAPIsSpringTag, ArticleID: ids.ArticleRestAPIs, TagName: "spring", CreatedAt: now},
			{ID: ids.RestAPIsWebdevTag, ArticleID: ids.ArticleRestAPIs, TagName: "webdev", CreatedAt: now},
		},
		Comments: []*models.ArticleComment{
			{ID: ids.CommentJohnOnMongo, ArticleID: ids.ArticleMongoSpring, AuthorID: ids.John, Content: "Great article! I learned a lot about MongoDB integration.", CreatedAt: now},
			{ID: ids.CommentMaryOnMongo, ArticleID: ids.ArticleMongoSpring, AuthorID: ids.Mary, Content: "Would love to see more examples of complex queries.", CreatedAt: now},
			{ID: ids.CommentJaneOnJava, ArticleID: ids.ArticleJava21, AuthorID: ids.Jane, Content: "Virtual threads are a game changer!", CreatedAt: now},
			{ID: ids.CommentJohnOnREST, ArticleID: ids.ArticleRestAPIs, AuthorID: ids.John, Content: "Very helpful guide for API development.", CreatedAt: now},
		},
		Favorites: []*models.ArticleFavorite{
			{ID: ids.FavJohnMongo, ArticleID: ids.ArticleMongoSpring, UserID: ids.John, CreatedAt: now},
			{ID: ids.FavMaryMongo, ArticleID: ids.ArticleMongoSpring, UserID: ids.Mary, CreatedAt: now},
			{ID: ids.FavJaneJava, ArticleID: ids.ArticleJava21, UserID: ids.Jane, CreatedAt: now},
		},
		Follows: []*models.UserFollow{
			{ID: ids.FollowJohnJane, FollowerID: ids.John, FollowingID: ids.Jane, CreatedAt: now},
			{ID: ids.FollowMaryJane, FollowerID: ids.Mary, FollowingID: ids.Jane, CreatedAt: now},
			{ID: ids.FollowJaneJohn, FollowerID: ids.Jane, FollowingID: ids.John, CreatedAt: now},
		},
	}
}

func user(id, email, username, bio, image string, now time.Time) *models.User {
	u := &models.User{
		ID:        id,
		Email:     email,
		Username:  username,
		Password:  DemoPasswordHash,
		Bio:       &bio,
		CreatedAt: now,
	}
	if image != "" {
		u.ImageURL = &image
	}
	return u
}

func article(id, authorID, slug, title, description, content string, at time.Time) *models.Article {
	return &models.Article{
		ID:          id,
		Slug:        slug,
		Title:       title,
		Description: description,
		Content:     content,
		AuthorID:    authorID,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

// Validate checks every record in insertion order: required fields,
// pairwise-unique natural keys and references to earlier records only.
func (ds *Dataset) Validate() error {
	v := validation.NewValidator()
	var errs validation.ValidationErrors

	for _, u := range ds.Users {
		errs = append(errs, v.ValidateUser(u)...)
		v.AddUser(u)
	}
	for _, t := range ds.Tags {
		errs = append(errs, v.ValidateTag(t)...)
		v.AddTag(t)
	}
	for _, a := range ds.Articles {
		errs = append(errs, v.ValidateArticle(a)...)
		v.AddArticle(a)
	}
	for _, l := range ds.ArticleTags {
		errs = append(errs, v.ValidateArticleTag(l)...)
		v.AddLink(l)
	}
	for _, c := range ds.Comments {
		errs = append(errs, v.ValidateComment(c)...)
		v.AddLink(c)
	}
	for _, f := range ds.Favorites {
		errs = append(errs, v.ValidateFavorite(f)...)
		v.AddLink(f)
	}
	for _, f := range ds.Follows {
		errs = append(errs, v.ValidateFollow(f)...)
		v.AddLink(f)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
