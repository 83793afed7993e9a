package exports

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var recordColumnNames = []string{"id", "owner_id", "kind", "file_name", "storage_key", "mime_type", "size_bytes", "created_at"}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rec := Record{ID: "id-1", OwnerID: "guest:1", Kind: "docx", FileName: "Resume.docx", StorageKey: "k", MimeType: "m", SizeBytes: 10, CreatedAt: time.Now().UTC()}
	mock.ExpectExec("INSERT INTO exports").
		WithArgs(rec.ID, rec.OwnerID, rec.Kind, rec.FileName, rec.StorageKey, rec.MimeType, rec.SizeBytes, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (&PGRepo{DB: db}).Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM exports WHERE id = \\$1").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows(recordColumnNames).AddRow("id-1", "guest:1", "pdf", "R.pdf", "k", "application/pdf", int64(5), created))
	mock.ExpectQuery("SELECT .* FROM exports WHERE id = \\$1").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows(recordColumnNames).AddRow("id-1", "guest:1", "pdf", "R.pdf", "k", "application/pdf", int64(5), created))
	mock.ExpectQuery("SELECT .* FROM exports WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	rec, err := repo.GetByID(context.Background(), "guest:1", "id-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rec.FileName != "R.pdf" || !rec.CreatedAt.Equal(created) {
		t.Fatalf("unexpected record %+v", rec)
	}
	if _, err := repo.GetByID(context.Background(), "guest:2", "id-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "guest:1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT .* FROM exports WHERE owner_id = \\$1 ORDER BY created_at DESC").
		WithArgs("guest:1", maxListLimit, 0).
		WillReturnRows(sqlmock.NewRows(recordColumnNames))

	out, err := (&PGRepo{DB: db}).ListByOwner(context.Background(), "guest:1", 500, -3)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
