package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CRUD is the query surface shared by every reference-data repository.
type CRUD[T any, F any] interface {
	List(ctx context.Context, filter F, page domain.Page) ([]T, int, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds an ILIKE pattern matching s anywhere, with wildcards in s
// taken literally.
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func paginate(q sq.SelectBuilder, page domain.Page) sq.SelectBuilder {
	if page.Limit > 0 {
		q = q.Limit(uint64(page.Limit))
	}
	if page.Offset > 0 {
		q = q.Offset(uint64(page.Offset))
	}
	return q
}

func query(ctx context.Context, db querier, q sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return db.Query(ctx, sql, args...)
}

func count(ctx context.Context, db querier, base sq.SelectBuilder) (int, error) {
	sql, args, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// listPage runs the count and the page query for one filtered base query.
func listPage[T any](ctx context.Context, db querier, base sq.SelectBuilder, columns []string, orderBy string, page domain.Page, scan pgx.RowToFunc[T]) ([]T, int, error) {
	total, err := count(ctx, db, base)
	if err != nil {
		return nil, 0, err
	}
	items := make([]T, 0)
	if total == 0 {
		return items, 0, nil
	}

	rows, err := query(ctx, db, paginate(base.Columns(columns...).OrderBy(orderBy), page))
	if err != nil {
		return nil, 0, err
	}
	items, err = pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func getOne[T any](ctx context.Context, db querier, q sq.Sqlizer, scan pgx.RowToFunc[T]) (*T, error) {
	rows, err := query(ctx, db, q)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectExactlyOneRow(rows, scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func insertReturningID(ctx context.Context, db querier, q sq.InsertBuilder) (int64, error) {
	sql, args, err := q.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	var id int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

func update(ctx context.Context, db querier, q sq.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db querier, table string, id int64) error {
	tag, err := db.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
