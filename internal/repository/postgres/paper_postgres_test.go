package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"paperhub/internal/model"
	"paperhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var paperColumns = []string{"id", "storage_key", "original_name", "content_type", "size", "upload_date", "uploaded_by", "assigned_to"}

func TestPaperPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &model.Paper{
		ID:           "paper-uuid",
		StorageKey:   "papers/blob-uuid.pdf",
		OriginalName: "paper.pdf",
		ContentType:  "application/pdf",
		Size:         10,
		UploadDate:   now,
		Metadata: model.PaperMeta{
			UploadedBy: "student-uuid",
			AssignedTo: "mentor-uuid",
		},
	}

	rows := sqlmock.NewRows(paperColumns).
		AddRow(p.ID, p.StorageKey, p.OriginalName, p.ContentType, p.Size, p.UploadDate, p.Metadata.UploadedBy, p.Metadata.AssignedTo)

	mock.ExpectQuery("INSERT INTO papers").
		WithArgs(p.ID, p.StorageKey, p.OriginalName, p.ContentType, p.Size, p.UploadDate, p.Metadata.UploadedBy, p.Metadata.AssignedTo).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, p)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, p.ID, result.ID)
	assert.Equal(t, p.Metadata.AssignedTo, result.Metadata.AssignedTo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaperPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(paperColumns).
			AddRow("paper-id", "papers/key.pdf", "paper.pdf", "application/pdf", 100, time.Now(), "student-id", "mentor-id")

		mock.ExpectQuery("SELECT (.+) FROM papers WHERE id = ?").
			WithArgs("paper-id").
			WillReturnRows(rows)

		p, err := repo.FindByID(ctx, "paper-id")

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, "paper-id", p.ID)
		assert.Equal(t, "paper.pdf", p.OriginalName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM papers WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, p)
	})
}

func TestPaperPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM papers").
			WithArgs("student-id").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(paperColumns).
			AddRow("p2", "papers/k2.pdf", "b.pdf", "application/pdf", 20, time.Now(), "student-id", "mentor-id").
			AddRow("p1", "papers/k1.pdf", "a.pdf", "application/pdf", 10, time.Now(), "student-id", "mentor-id")

		mock.ExpectQuery("SELECT (.+) FROM papers").
			WithArgs("student-id", 10, 0).
			WillReturnRows(rows)

		res, err := repo.ListByUser(ctx, "student-id", repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "p2", res.Items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM papers").
			WithArgs("student-id").
			WillReturnError(sql.ErrConnDone)

		res, err := repo.ListByUser(ctx, "student-id", repository.PageQuery{Limit: 10, Offset: 0})

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestPaperPostgres_WithQuerier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	bound := repo.WithQuerier(tx)
	assert.NotSame(t, repo, bound)
}
