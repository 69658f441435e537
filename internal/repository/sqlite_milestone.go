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

const milestoneColumns = `id, activity_id, name, date, created_at`

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (id, activity_id, name, date, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ActivityID, m.Name, nullableTimeToString(m.Date, dateLayout), m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	m, err := scanMilestone(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("milestone %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context) ([]*domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+milestoneColumns+` FROM milestones ORDER BY date, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()
	return scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) ListByActivity(ctx context.Context, activityID string) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE activity_id = ? ORDER BY date, rowid`
	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones for activity: %w", err)
	}
	defer rows.Close()
	return scanMilestones(rows)
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return expectAffected(res, "milestone "+id)
}

// scanMilestone leaves Date nil when the stored value does not parse; such
// milestones are skipped from drawing rather than failing the fetch.
func scanMilestone(row scanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var date sql.NullString
	var createdAtStr string
	if err := row.Scan(&m.ID, &m.ActivityID, &m.Name, &date, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	m.Date = parseNullableTime(date, dateLayout)
	m.CreatedAt = parseTimestamp(createdAtStr)
	return &m, nil
}

func scanMilestones(rows *sql.Rows) ([]*domain.Milestone, error) {
	var out []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return out, nil
}
