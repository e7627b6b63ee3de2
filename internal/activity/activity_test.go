package activity

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestRecord(t *testing.T) {
	repo, mock := newMockRepo(t)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO auth_event").
		WithArgs("u1", KindLogin, "ada@example.com", "203.0.113.7", "US", "Chrome", "Linux", ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Record(context.Background(), Event{
		UserID:    "u1",
		Kind:      KindLogin,
		Email:     "ada@example.com",
		IP:        "203.0.113.7",
		Country:   "US",
		Browser:   "Chrome",
		OS:        "Linux",
		CreatedAt: ts,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRecordDefaultsCreatedAt(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO auth_event").
		WithArgs("", KindLoginFailure, "ada@example.com", "", "", "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Record(context.Background(), Event{
		Kind:  KindLoginFailure,
		Email: "ada@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRecentForUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	cols := []string{"id", "user_id", "kind", "email", "ip", "country", "browser", "os", "created_at"}
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM auth_event WHERE user_id").
		WithArgs("u1", 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "u1", KindLogin, "ada@example.com", "203.0.113.7", "US", "Chrome", "Linux", now).
			AddRow(1, "u1", KindLogout, "ada@example.com", "203.0.113.7", "US", "Chrome", "Linux", now.Add(-time.Hour)))

	events, err := repo.RecentForUser(context.Background(), "u1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Kind != KindLogin || events[1].Kind != KindLogout {
		t.Errorf("order mismatch: %+v", events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
