package student

import (
	"context"
	"database/sql"
	"fmt"

	"campusevents/internal/adapters/storage"
	domain "campusevents/internal/domain/student"
)

const studentColumns = "id, name, email, password_hash, section"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new student store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanStudent(row *sql.Row) (domain.Student, error) {
	var entity domain.Student
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Section,
	)
	if err == sql.ErrNoRows {
		return domain.Student{}, fmt.Errorf("student not found: %w", err)
	}
	return entity, err
}

// GetByID retrieves a Student by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Student, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM student WHERE id = ?", id)
	return scanStudent(row)
}

// GetByEmail retrieves a Student by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Student, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM student WHERE email = ?", email)
	return scanStudent(row)
}

// Save persists a Student to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Student) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO student (id, name, email, password_hash, section)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email,
		   password_hash=excluded.password_hash, section=excluded.section`,
		entity.ID, entity.Name, entity.Email, entity.PasswordHash, entity.Section,
	)
	return err
}

// Delete removes a Student from the database.
// PRE: id is non-empty; dependent registrations have already been removed
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM student WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Section != "" {
		where += " AND section = ?"
		args = append(args, filter.Section)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "email": "email", "section": "section",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY name ASC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the total number of students matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM student"+where, args...).Scan(&count)
	return count, err
}

// List retrieves a list of Students based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Student, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + studentColumns + " FROM student" + where + sortClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Student
	for rows.Next() {
		var entity domain.Student
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Email,
			&entity.PasswordHash,
			&entity.Section,
		); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
