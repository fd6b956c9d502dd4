package postgres

import (
	"context"
	"database/sql"

	"paperhub/internal/database"
	"paperhub/internal/model"
	"paperhub/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db database.Querier
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db database.Querier) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// WithQuerier returns a copy of the repository bound to q (e.g. an open transaction).
func (r *UserPostgres) WithQuerier(q database.Querier) repository.UserRepository {
	return &UserPostgres{db: q}
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, role, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
	)
	return scanUser(row)
}

// FindByID fetches a single user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// ListByRole returns all users with the given role, oldest account first.
func (r *UserPostgres) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// AppendPaper appends paperID to the user's reference list. The composite
// primary key on (user_id, paper_id) rejects a duplicate append.
func (r *UserPostgres) AppendPaper(ctx context.Context, userID, paperID string) error {
	const q = `INSERT INTO user_papers (user_id, paper_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, q, userID, paperID)
	return err
}

// PaperIDs returns the user's reference list in append order.
func (r *UserPostgres) PaperIDs(ctx context.Context, userID string) ([]string, error) {
	const q = `
		SELECT paper_id
		FROM user_papers
		WHERE user_id = $1
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
