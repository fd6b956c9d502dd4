package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"paperhub/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &model.User{
		ID:           "user-uuid",
		Name:         "Student One",
		Email:        "student1@example.com",
		PasswordHash: "$2a$12$hash",
		Role:         model.RoleStudent,
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows(userColumns).
		AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, u)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, u.Email, result.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow("user-id", "Mentor One", "mentor1@example.com", "$2a$12$hash", model.RoleMentor, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("mentor1@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "mentor1@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, model.RoleMentor, u.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "missing@example.com")

		assert.Error(t, err)
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, u)
	})
}

func TestUserPostgres_ListByRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(userColumns).
		AddRow("m1", "Mentor One", "m1@example.com", "h1", model.RoleMentor, time.Now()).
		AddRow("m2", "Mentor Two", "m2@example.com", "h2", model.RoleMentor, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE role = ?").
		WithArgs(model.RoleMentor).
		WillReturnRows(rows)

	users, err := repo.ListByRole(ctx, model.RoleMentor)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "m1", users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_AppendPaper(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO user_papers").
			WithArgs("user-id", "paper-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AppendPaper(ctx, "user-id", "paper-id")
		assert.NoError(t, err)
	})

	t.Run("duplicate append fails", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO user_papers").
			WithArgs("user-id", "paper-id").
			WillReturnError(sql.ErrTxDone)

		err := repo.AppendPaper(ctx, "user-id", "paper-id")
		assert.Error(t, err)
	})
}

func TestUserPostgres_PaperIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"paper_id"}).
		AddRow("p1").
		AddRow("p2")

	mock.ExpectQuery("SELECT paper_id FROM user_papers").
		WithArgs("user-id").
		WillReturnRows(rows)

	ids, err := repo.PaperIDs(ctx, "user-id")

	assert.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
