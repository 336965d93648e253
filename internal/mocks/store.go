package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

// MemoryStore is an in-memory storage backend. Ids are always unique;
// natural keys become unique once EnsureIndexes has run, the way a
// document store behaves.
type MemoryStore struct {
	mu      sync.RWMutex
	indexed bool

	users       *table[*models.User]
	articles    *table[*models.Article]
	tags        *table[*models.Tag]
	articleTags *table[*models.ArticleTag]
	comments    *table[*models.ArticleComment]
	favorites   *table[*models.ArticleFavorite]
	follows     *table[*models.UserFollow]

	insertErrors map[string]error

	ResetCalls  int
	IndexCalls  int
	ResetError  error
	HealthError error
	Closed      bool
}

// NewMemoryStore creates an empty in-memory backend
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{insertErrors: make(map[string]error)}
	s.users = newTable[*models.User](s, repository.Users, clone[models.User])
	s.articles = newTable[*models.Article](s, repository.Articles, clone[models.Article])
	s.tags = newTable[*models.Tag](s, repository.Tags, clone[models.Tag])
	s.articleTags = newTable[*models.ArticleTag](s, repository.ArticleTags, clone[models.ArticleTag])
	s.comments = newTable[*models.ArticleComment](s, repository.Comments, clone[models.ArticleComment])
	s.favorites = newTable[*models.ArticleFavorite](s, repository.Favorites, clone[models.ArticleFavorite])
	s.follows = newTable[*models.UserFollow](s, repository.Follows, clone[models.UserFollow])
	return s
}

// NewStore returns a repository.Store backed by a fresh MemoryStore
func NewStore() *repository.Store {
	return NewMemoryStore().Store()
}

// Store exposes the in-memory backend through the repository ports
func (s *MemoryStore) Store() *repository.Store {
	return repository.NewStore(repository.Repositories{
		User:       &userRepo{t: s.users},
		Article:    &articleRepo{t: s.articles},
		Tag:        &tagRepo{t: s.tags},
		ArticleTag: &articleTagRepo{t: s.articleTags},
		Comment:    &commentRepo{t: s.comments},
		Favorite:   &favoriteRepo{t: s.favorites},
		Follow:     &followRepo{t: s.follows},
	}, s)
}

// FailInserts makes every BatchInsert into c return err
func (s *MemoryStore) FailInserts(c repository.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertErrors[c.Document] = err
}

// Indexed reports whether EnsureIndexes has run since the last Reset
func (s *MemoryStore) Indexed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexed
}

func (s *MemoryStore) Name() string {
	return "memory"
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ResetCalls++
	if s.ResetError != nil {
		return s.ResetError
	}

	s.indexed = false
	s.users.clear()
	s.articles.clear()
	s.tags.clear()
	s.articleTags.clear()
	s.comments.clear()
	s.favorites.clear()
	s.follows.clear()
	return nil
}

// EnsureIndexes turns on natural key uniqueness. It fails when stored
// data already violates a key.
func (s *MemoryStore) EnsureIndexes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IndexCalls++

	for _, err := range []error{
		s.users.duplicates(),
		s.articles.duplicates(),
		s.tags.duplicates(),
		s.articleTags.duplicates(),
		s.favorites.duplicates(),
		s.follows.duplicates(),
	} {
		if err != nil {
			return err
		}
	}
	s.indexed = true
	return nil
}

func (s *MemoryStore) HealthCheck(ctx context.Context) error {
	return s.HealthError
}

func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// table keeps rows in insertion order with id and natural key counts.
// Rows are copied in and out so callers never share stored records.
type table[T models.Entity] struct {
	s     *MemoryStore
	coll  repository.Collection
	clone func(T) T
	rows  []T
	ids   map[string]struct{}
	keys  map[string]int
}

func newTable[T models.Entity](s *MemoryStore, coll repository.Collection, clone func(T) T) *table[T] {
	t := &table[T]{s: s, coll: coll, clone: clone}
	t.clear()
	return t
}

func (t *table[T]) clear() {
	t.rows = nil
	t.ids = make(map[string]struct{})
	t.keys = make(map[string]int)
}

// insert stops at the first rejected row, like an ordered insert
func (t *table[T]) insert(docs []T) (int, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if err := t.s.insertErrors[t.coll.Document]; err != nil {
		return 0, err
	}
	for i, doc := range docs {
		if err := t.check(doc); err != nil {
			return i, err
		}
		t.rows = append(t.rows, t.clone(doc))
		t.ids[doc.EntityID()] = struct{}{}
		for _, k := range doc.NaturalKeys() {
			t.keys[k.String()]++
		}
	}
	return len(docs), nil
}

func (t *table[T]) check(doc T) error {
	if _, ok := t.ids[doc.EntityID()]; ok {
		return &repository.ConstraintError{Collection: t.coll.Document, Key: "_id=" + doc.EntityID()}
	}
	if !t.s.indexed {
		return nil
	}
	for _, k := range doc.NaturalKeys() {
		if t.keys[k.String()] > 0 {
			return &repository.ConstraintError{Collection: t.coll.Document, Key: k.String()}
		}
	}
	return nil
}

func (t *table[T]) duplicates() error {
	for key, n := range t.keys {
		if n > 1 {
			return fmt.Errorf("cannot index %s: %w", t.coll.Document,
				&repository.ConstraintError{Collection: t.coll.Document, Key: key})
		}
	}
	return nil
}

func (t *table[T]) get(match func(T) bool) T {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for _, row := range t.rows {
		if match(row) {
			return t.clone(row)
		}
	}
	var zero T
	return zero
}

func (t *table[T]) find(match func(T) bool, less func(a, b T) bool) []T {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var out []T
	for _, row := range t.rows {
		if match(row) {
			out = append(out, t.clone(row))
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func (t *table[T]) count(match func(T) bool) int {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	n := 0
	for _, row := range t.rows {
		if match(row) {
			n++
		}
	}
	return n
}

func clone[E any](row *E) *E {
	c := *row
	return &c
}

func all[T any](T) bool { return true }
