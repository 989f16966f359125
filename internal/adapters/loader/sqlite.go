package loader

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/okian/auditplan/internal/domain/model"
)

const (
	engagementsQuery = `SELECT client_industry, client_size, complexity, prev_issues, hours_spent
		FROM engagements ORDER BY rowid`
	staffQuery = `SELECT staff_id, name, level, skills, available_hours_per_week
		FROM staff ORDER BY rowid`
)

// SQLiteSource reads both collections from one SQLite database with the
// tables engagements and staff. Columns match the CSV headers.
type SQLiteSource struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens the database read-only. A missing file is an error rather
// than a new empty database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, model.ErrDataLoad, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w: %w", path, model.ErrDataLoad, err)
	}
	return &SQLiteSource{path: path, db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Engagements reads the engagements table in insertion order.
func (s *SQLiteSource) Engagements(ctx context.Context) ([]model.EngagementRecord, error) {
	rows, err := s.db.QueryContext(ctx, engagementsQuery)
	if err != nil {
		return nil, fmt.Errorf("%s engagements: %w: %w", s.path, model.ErrDataLoad, err)
	}
	defer rows.Close()

	name := s.path + " engagements"
	var out []model.EngagementRecord
	for n := 1; rows.Next(); n++ {
		var r engagementRow
		if err := rows.Scan(&r.ClientIndustry, &r.ClientSize, &r.Complexity, &r.PrevIssues, &r.HoursSpent); err != nil {
			return nil, rowError(name, n, err)
		}
		rec, err := r.record()
		if err != nil {
			return nil, rowError(name, n, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, model.ErrDataLoad, err)
	}
	return out, nil
}

// Staff reads the staff table in insertion order. Skills are stored in the
// delimited form.
func (s *SQLiteSource) Staff(ctx context.Context) ([]model.StaffRecord, error) {
	rows, err := s.db.QueryContext(ctx, staffQuery)
	if err != nil {
		return nil, fmt.Errorf("%s staff: %w: %w", s.path, model.ErrDataLoad, err)
	}
	defer rows.Close()

	name := s.path + " staff"
	var out []model.StaffRecord
	for n := 1; rows.Next(); n++ {
		var (
			r      staffRow
			skills sql.NullString
		)
		if err := rows.Scan(&r.StaffID, &r.Name, &r.Level, &skills, &r.AvailableHoursPerWeek); err != nil {
			return nil, rowError(name, n, err)
		}
		r.Skills = model.ParseSkills(skills.String)
		rec, err := r.record()
		if err != nil {
			return nil, rowError(name, n, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, model.ErrDataLoad, err)
	}
	return out, nil
}
