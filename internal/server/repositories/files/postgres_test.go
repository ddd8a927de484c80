package files

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

var fileCols = []string{"id", "owner_email", "owner_name", "blob_key", "file_url", "file_name",
	"file_description", "content_type", "size_bytes", "uploaded_at", "modified_at"}

const colsRe = `id,\s*owner_email,\s*owner_name,\s*blob_key,\s*file_url,\s*file_name,\s*file_description,\s*content_type,\s*size_bytes,\s*uploaded_at,\s*modified_at`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleFile() *models.File {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &models.File{
		ID:              "f-1",
		OwnerEmail:      "ann@x.io",
		OwnerName:       "Ann",
		BlobKey:         "uploads/2024/03/01/k1",
		FileURL:         "https://cdn.example/uploads/2024/03/01/k1",
		FileName:        "a.png",
		FileDescription: "a.png",
		ContentType:     "image/png",
		SizeBytes:       42,
		UploadedAt:      ts,
		ModifiedAt:      ts,
	}
}

func fileRow(f *models.File) []driver.Value {
	return []driver.Value{f.ID, f.OwnerEmail, f.OwnerName, f.BlobKey, f.FileURL, f.FileName,
		f.FileDescription, f.ContentType, f.SizeBytes, f.UploadedAt, f.ModifiedAt}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+files\s*\(` + colsRe + `\)\s*VALUES\s*\(\$1,.*\$11\)\s*$`

	f := sampleFile()
	mock.ExpectExec(q).
		WithArgs(fileRow(f)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "f-1" || got.BlobKey != f.BlobKey {
		t.Fatalf("unexpected file: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+files`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleFile())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + colsRe + `\s+FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s*$`

	f := sampleFile()
	mock.ExpectQuery(q).WithArgs("f-1").
		WillReturnRows(sqlmock.NewRows(fileCols).AddRow(fileRow(f)...))

	got, err := repo.Get(context.Background(), "f-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.OwnerEmail != "ann@x.io" || got.SizeBytes != 42 {
		t.Fatalf("unexpected file: %+v", got)
	}

	mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + colsRe + `\s+FROM\s+files\s+ORDER\s+BY\s+uploaded_at,\s*id\s*$`

	a := sampleFile()
	b := sampleFile()
	b.ID, b.OwnerEmail = "f-2", "bob@x.io"
	mock.ExpectQuery(q).
		WillReturnRows(sqlmock.NewRows(fileCols).AddRow(fileRow(a)...).AddRow(fileRow(b)...))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].OwnerEmail != "bob@x.io" {
		t.Fatalf("unexpected files: %+v", got)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + colsRe + `\s+FROM\s+files\s+WHERE\s+owner_email\s*=\s*\$1\s+ORDER\s+BY\s+uploaded_at,\s*id\s*$`

	mock.ExpectQuery(q).WithArgs("carl@x.io").WillReturnRows(sqlmock.NewRows(fileCols))

	got, err := repo.ListByOwner(context.Background(), "carl@x.io")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListByOwner_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT`).WithArgs("ann@x.io").WillReturnError(errors.New("conn reset"))

	_, err := repo.ListByOwner(context.Background(), "ann@x.io")
	if err == nil || !regexp.MustCompile(`db error: .*conn reset`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("f-1").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(context.Background(), "f-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	mock.ExpectExec(q).WithArgs("f-1").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), "f-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
