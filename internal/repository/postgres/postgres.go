// Package postgres implements the repositories on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/repository"
	"github.com/rs/zerolog"
)

const (
	backendName = "postgres"

	uniqueViolation = "23505"
	undefinedTable  = "42P01"
)

// New creates every repository on top of db
func New(db *database.DB, log zerolog.Logger) *repository.Store {
	repos := repository.Repositories{
		User:       NewUserRepo(db),
		Article:    NewArticleRepo(db),
		Tag:        NewTagRepo(db),
		ArticleTag: NewArticleTagRepo(db),
		Comment:    NewCommentRepo(db),
		Favorite:   NewFavoriteRepo(db),
		Follow:     NewFollowRepo(db),
	}
	return repository.NewStore(repos, &backend{
		db:  db,
		log: log.With().Str("backend", backendName).Logger(),
	})
}

type backend struct {
	db  *database.DB
	log zerolog.Logger
}

func (b *backend) Name() string {
	return backendName
}

// Reset truncates every table, children first
func (b *backend) Reset(ctx context.Context) error {
	for i := len(repository.Collections) - 1; i >= 0; i-- {
		table := repository.Collections[i].Table
		_, err := b.db.ExecContext(ctx, "TRUNCATE TABLE "+pq.QuoteIdentifier(table)+" CASCADE")
		if isCode(err, undefinedTable) {
			b.log.Debug().Str("table", table).Msg("Table does not exist, skipping truncate")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// EnsureIndexes re-declares every index; the migration already created them
func (b *backend) EnsureIndexes(ctx context.Context) error {
	for _, spec := range repository.Indexes {
		if _, err := b.db.ExecContext(ctx, createIndexSQL(spec)); err != nil {
			return fmt.Errorf("failed to create index %s: %w", spec.Name, err)
		}
	}
	return nil
}

func (b *backend) HealthCheck(ctx context.Context) error {
	return b.db.HealthCheck(ctx)
}

func (b *backend) Close(context.Context) error {
	return b.db.Close()
}

func createIndexSQL(spec repository.IndexSpec) string {
	cols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i] = pq.QuoteIdentifier(c)
	}

	unique := ""
	if spec.Unique {
		unique = "UNIQUE "
	}

	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		unique,
		pq.QuoteIdentifier(spec.Name),
		pq.QuoteIdentifier(spec.Collection.Table),
		strings.Join(cols, ", "),
	)
}

// copyInsert streams n rows into table with COPY inside one transaction.
// Either every row is stored or none is.
func copyInsert(ctx context.Context, db *database.DB, c repository.Collection, columns []string, n int, row func(i int) []any) (int, error) {
	if n == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(c.Table, columns...))
	if err != nil {
		return 0, translate(c, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return 0, translate(c, err)
		}
	}

	// Execute the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, translate(c, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, translate(c, err)
	}

	return n, nil
}

func translate(c repository.Collection, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &repository.ConstraintError{Collection: c.Table, Key: pqErr.Constraint, Err: err}
	}
	return fmt.Errorf("%s: %w", c.Table, err)
}

func isCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

type scanner interface {
	Scan(dest ...any) error
}

func exists(ctx context.Context, db *database.DB, query string, args ...any) (bool, error) {
	var found bool
	err := db.QueryRowContext(ctx, query, args...).Scan(&found)
	return found, err
}

func count(ctx context.Context, db *database.DB, query string, args ...any) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// collect runs query and scans every row with scan
func collect[T any](ctx context.Context, db *database.DB, query string, scan func(scanner) (*T, error), args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// one runs query and scans a single row; no row yields nil, nil
func one[T any](ctx context.Context, db *database.DB, query string, scan func(scanner) (*T, error), args ...any) (*T, error) {
	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
