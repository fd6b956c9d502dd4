package postgres

import (
	"context"
	"database/sql"
	"errors"

	"paperhub/internal/database"
	"paperhub/internal/model"
	"paperhub/internal/repository"
)

// PaperPostgres is a PostgreSQL implementation of repository.PaperRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PaperPostgres struct {
	db database.Querier
}

// NewPaperPostgres creates a new PaperPostgres repository.
func NewPaperPostgres(db database.Querier) *PaperPostgres {
	return &PaperPostgres{db: db}
}

var _ repository.PaperRepository = (*PaperPostgres)(nil)

// IsNoRowsError reports whether err comes from a query that matched no rows.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// WithQuerier returns a copy of the repository bound to q (e.g. an open transaction).
func (r *PaperPostgres) WithQuerier(q database.Querier) repository.PaperRepository {
	return &PaperPostgres{db: q}
}

// Create inserts a new paper row and returns the stored record.
func (r *PaperPostgres) Create(ctx context.Context, p *model.Paper) (*model.Paper, error) {
	const q = `
		INSERT INTO papers (id, storage_key, original_name, content_type, size, upload_date, uploaded_by, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, storage_key, original_name, content_type, size, upload_date, uploaded_by, assigned_to
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.StorageKey,
		p.OriginalName,
		p.ContentType,
		p.Size,
		p.UploadDate,
		p.Metadata.UploadedBy,
		p.Metadata.AssignedTo,
	)
	return scanPaper(row)
}

// FindByID fetches a single paper by its ID.
func (r *PaperPostgres) FindByID(ctx context.Context, id string) (*model.Paper, error) {
	const q = `
		SELECT id, storage_key, original_name, content_type, size, upload_date, uploaded_by, assigned_to
		FROM papers
		WHERE id = $1
	`
	return scanPaper(r.db.QueryRowContext(ctx, q, id))
}

// ListByUser returns papers where the user is uploader or assignee, newest
// first, using LIMIT/OFFSET pagination and a total count.
func (r *PaperPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Paper], error) {
	const qCount = `SELECT COUNT(*) FROM papers WHERE uploaded_by = $1 OR assigned_to = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, storage_key, original_name, content_type, size, upload_date, uploaded_by, assigned_to
		FROM papers
		WHERE uploaded_by = $1 OR assigned_to = $1
		ORDER BY upload_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Paper, 0)
	for rows.Next() {
		var p model.Paper
		if err := rows.Scan(
			&p.ID,
			&p.StorageKey,
			&p.OriginalName,
			&p.ContentType,
			&p.Size,
			&p.UploadDate,
			&p.Metadata.UploadedBy,
			&p.Metadata.AssignedTo,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Paper]{
		Items: items,
		Total: total,
	}, nil
}

func scanPaper(row *sql.Row) (*model.Paper, error) {
	var p model.Paper
	if err := row.Scan(
		&p.ID,
		&p.StorageKey,
		&p.OriginalName,
		&p.ContentType,
		&p.Size,
		&p.UploadDate,
		&p.Metadata.UploadedBy,
		&p.Metadata.AssignedTo,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
