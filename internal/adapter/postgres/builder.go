package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// Builder returns a squirrel statement builder that emits $n placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Select builds b and scans every returned row into dst (a pointer to a slice).
func Select(ctx context.Context, q Querier, dst any, b squirrel.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, q, dst, sql, args...)
}

// Get builds b and scans exactly one row into dst. Zero rows yield pgx.ErrNoRows.
func Get(ctx context.Context, q Querier, dst any, b squirrel.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Get(ctx, q, dst, sql, args...)
}

// Exec builds b, executes it and returns the number of affected rows.
func Exec(ctx context.Context, q Querier, b squirrel.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Count runs SELECT count(*) over the FROM/WHERE of b.
// b must not carry ORDER BY yet.
func Count(ctx context.Context, q Querier, b squirrel.SelectBuilder) (int, error) {
	var n int
	err := Get(ctx, q, &n, b.RemoveColumns().RemoveLimit().RemoveOffset().Column("count(*)"))
	return n, err
}

// ILike matches s anywhere in any of the given columns, case-insensitively.
func ILike(s string, columns ...string) squirrel.Or {
	pattern := "%" + escapeLike(s) + "%"
	or := make(squirrel.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, squirrel.ILike{c: pattern})
	}
	return or
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
