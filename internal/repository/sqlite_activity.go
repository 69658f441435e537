package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// activityColumns is the canonical SELECT column list for activities.
const activityColumns = `id, parent_id, name, start_date, end_date, collapsed, sort_order,
		color, created_at, updated_at`

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (id, parent_id, name, start_date, end_date, collapsed,
		sort_order, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ParentID, // *string: nil becomes SQL NULL
		a.Name,
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		boolToInt(a.Collapsed),
		a.SortOrder,
		a.Color,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

// List returns every activity in fetch order: sort order first, then
// insertion order, so sibling ties stay stable between fetches.
func (r *SQLiteActivityRepo) List(ctx context.Context) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY sort_order, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

func (r *SQLiteActivityRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE parent_id = ? ORDER BY sort_order, rowid`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child activities: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

// NextSortOrder returns MAX(sort_order)+1 among the children of parentID,
// or among top-level activities when parentID is nil.
func (r *SQLiteActivityRepo) NextSortOrder(ctx context.Context, parentID *string) (int, error) {
	var (
		next int
		err  error
	)
	if parentID == nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM activities WHERE parent_id IS NULL`).Scan(&next)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM activities WHERE parent_id = ?`, *parentID).Scan(&next)
	}
	if err != nil {
		return 0, fmt.Errorf("computing next sort order: %w", err)
	}
	return next, nil
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET parent_id = ?, name = ?, start_date = ?, end_date = ?,
		collapsed = ?, sort_order = ?, color = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.ParentID,
		a.Name,
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		boolToInt(a.Collapsed),
		a.SortOrder,
		a.Color,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return expectAffected(res, "activity "+a.ID)
}

// Delete removes the activity. Children, dependencies and milestones go
// with it through ON DELETE CASCADE.
func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return expectAffected(res, "activity "+id)
}

func scanActivity(row scanner) (*domain.Activity, error) {
	var a domain.Activity
	var parentID, startStr, endStr sql.NullString
	var collapsed int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&a.ID, &parentID, &a.Name, &startStr, &endStr, &collapsed, &a.SortOrder,
		&a.Color, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}

	a.ParentID = nullableString(parentID)
	a.StartDate = parseNullableTime(startStr, dateLayout)
	a.EndDate = parseNullableTime(endStr, dateLayout)
	a.Collapsed = intToBool(collapsed)
	a.CreatedAt = parseTimestamp(createdAtStr)
	a.UpdatedAt = parseTimestamp(updatedAtStr)
	return &a, nil
}

func scanActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}
