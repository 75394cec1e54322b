package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	createQuery = `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*screen_name,\s*avatar_url\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`
	getQuery    = `(?s)^SELECT\s+id,\s*name,\s*screen_name,\s*avatar_url,\s*avatar_key,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	avatarQuery = `(?s)^UPDATE\s+users\s+SET\s+avatar_key\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created)
	mock.ExpectQuery(createQuery).
		WithArgs("Ann Lee", "ann", "").
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &models.User{Name: "Ann Lee", ScreenName: "ann"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.ScreenName != "ann" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQuery).
		WithArgs("Ann Lee", "ann", "").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Name: "Ann Lee", ScreenName: "ann"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "screen_name", "avatar_url", "avatar_key", "created_at"}).
		AddRow(int64(7), "Bob", "bob", "", "avatars/7", time.Now())
	mock.ExpectQuery(getQuery).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != 7 || got.ScreenName != "bob" || got.AvatarKey != "avatars/7" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetAvatarKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(avatarQuery).
		WithArgs(int64(7), "avatars/7").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SetAvatarKey(context.Background(), 7, "avatars/7"); err != nil {
		t.Fatalf("SetAvatarKey error: %v", err)
	}

	mock.ExpectExec(avatarQuery).
		WithArgs(int64(8), "k").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetAvatarKey(context.Background(), 8, "k"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}

	mock.ExpectExec(avatarQuery).
		WithArgs(int64(9), "k").
		WillReturnError(errors.New("db err"))
	if err := repo.SetAvatarKey(context.Background(), 9, "k"); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
