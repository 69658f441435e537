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

const dependencyColumns = `id, from_activity_id, to_activity_id, type, created_at`

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (id, from_activity_id, to_activity_id, type, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.FromActivityID, d.ToActivityID, string(d.Type), d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) GetByID(ctx context.Context, id string) (*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE id = ?`
	d, err := scanDependency(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dependency %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDependencyRepo) List(ctx context.Context) ([]*domain.Dependency, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+dependencyColumns+` FROM dependencies ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

// ListByActivity returns the links where activityID is either end.
func (r *SQLiteDependencyRepo) ListByActivity(ctx context.Context, activityID string) ([]*domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies
		WHERE from_activity_id = ? OR to_activity_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, activityID, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies for activity: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) SetType(ctx context.Context, id string, typ domain.DependencyType) error {
	res, err := r.db.ExecContext(ctx, `UPDATE dependencies SET type = ? WHERE id = ?`, string(typ), id)
	if err != nil {
		return fmt.Errorf("updating dependency type: %w", err)
	}
	return expectAffected(res, "dependency "+id)
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dependencies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return expectAffected(res, "dependency "+id)
}

func scanDependency(row scanner) (*domain.Dependency, error) {
	var d domain.Dependency
	var typ, createdAtStr string
	if err := row.Scan(&d.ID, &d.FromActivityID, &d.ToActivityID, &typ, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning dependency: %w", err)
	}
	d.Type = domain.DependencyType(typ)
	d.CreatedAt = parseTimestamp(createdAtStr)
	return &d, nil
}

func scanDependencies(rows *sql.Rows) ([]*domain.Dependency, error) {
	var deps []*domain.Dependency
	for rows.Next() {
		d, err := scanDependency(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
