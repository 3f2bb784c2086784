package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"abcip/internal/database"
	"abcip/internal/ordering"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// orderedTables whitelists the tables the shared ordering helpers may touch;
// table names are interpolated into SQL and must never come from input.
var orderedTables = map[string]bool{
	"banners":      true,
	"associates":   true,
	"team_members": true,
	"committees":   true,
	"videos":       true,
}

func mustOrderedTable(table string) {
	if !orderedTables[table] {
		panic(fmt.Sprintf("postgres: %q is not an ordered table", table))
	}
}

// nextOrder returns max(display_order)+1, or 0 for an empty table.
func nextOrder(ctx context.Context, db *sql.DB, table string) (int, error) {
	mustOrderedTable(table)
	var next int
	q := fmt.Sprintf(`SELECT COALESCE(MAX(display_order) + 1, 0) FROM %s`, table)
	if err := db.QueryRowContext(ctx, q).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// moveRow swaps the display_order of id with its neighbor at order±1.
// The neighbor lookup and both updates run in one transaction with the two
// rows locked, so concurrent moves cannot interleave.
func moveRow(ctx context.Context, db *sql.DB, table, id string, dir ordering.Direction) error {
	mustOrderedTable(table)
	return database.WithTx(ctx, db, func(tx *sql.Tx) error {
		var current int
		q := fmt.Sprintf(`SELECT display_order FROM %s WHERE id = $1 FOR UPDATE`, table)
		if err := tx.QueryRowContext(ctx, q, id).Scan(&current); err != nil {
			return err
		}

		target := current + 1
		if dir == ordering.Up {
			target = current - 1
		}
		q = fmt.Sprintf(`SELECT id, display_order FROM %s WHERE display_order = $1 AND id <> $2 ORDER BY created_at LIMIT 1 FOR UPDATE`, table)
		var neighbor ordering.Item
		if err := tx.QueryRowContext(ctx, q, target, id).Scan(&neighbor.ID, &neighbor.Order); err != nil {
			if err == sql.ErrNoRows {
				return ordering.ErrNoNeighbor
			}
			return err
		}

		moved, other, err := ordering.Swap([]ordering.Item{{ID: id, Order: current}, neighbor}, id, dir)
		if err != nil {
			return err
		}

		q = fmt.Sprintf(`UPDATE %s SET display_order = $1, updated_at = now() WHERE id = $2`, table)
		for _, it := range []ordering.Item{moved, other} {
			if _, err := tx.ExecContext(ctx, q, it.Order, it.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// deleteByID removes a row by id; a missing row is not an error.
func deleteByID(ctx context.Context, db *sql.DB, table, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	_, err := db.ExecContext(ctx, q, id)
	return err
}

// expectOne turns an UPDATE that matched nothing into sql.ErrNoRows.
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// likePattern escapes LIKE wildcards in user input and wraps it for a contains match.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

// uuidArray renders ids as a PostgreSQL array literal for a $n::uuid[] parameter.
// Callers pass ids that were already validated as UUIDs.
func uuidArray(ids []string) string {
	return "{" + strings.Join(ids, ",") + "}"
}
