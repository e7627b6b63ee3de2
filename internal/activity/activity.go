// internal/activity/activity.go
//
// Auth-event activity log.
//
// Context
// -------
// The dashboard's "Recent Activity" panel and operator forensics both
// want a trail of authentication events: who logged in, from where, on
// what browser, and when a session was declared dead.  Events are
// written best-effort; a storage failure is logged and swallowed so the
// auth flow itself never blocks on the database.
//
// Schema lives in Schema and is applied at boot with CREATE TABLE IF
// NOT EXISTS, keeping the single table self-bootstrapping.
package activity

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Event kinds.
const (
	KindLogin          = "login"
	KindLoginFailure   = "login_failure"
	KindLogout         = "logout"
	KindSessionExpired = "session_expired"
)

// Schema creates the auth_event table.
const Schema = `
CREATE TABLE IF NOT EXISTS auth_event (
    id         BIGINT AUTO_INCREMENT PRIMARY KEY,
    user_id    VARCHAR(64)  NOT NULL DEFAULT '',
    kind       VARCHAR(32)  NOT NULL,
    email      VARCHAR(255) NOT NULL DEFAULT '',
    ip         VARCHAR(45)  NOT NULL DEFAULT '',
    country    VARCHAR(2)   NOT NULL DEFAULT '',
    browser    VARCHAR(64)  NOT NULL DEFAULT '',
    os         VARCHAR(64)  NOT NULL DEFAULT '',
    created_at DATETIME     NOT NULL,
    KEY idx_auth_event_user (user_id, created_at)
)`

// Event is one recorded auth happening.
type Event struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Kind      string    `db:"kind"`
	Email     string    `db:"email"`
	IP        string    `db:"ip"`
	Country   string    `db:"country"`
	Browser   string    `db:"browser"`
	OS        string    `db:"os"`
	CreatedAt time.Time `db:"created_at"`
}

// Repository persists and queries events.  A nil *Repository is valid
// and disables recording (callers nil-check before use).
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps an open activity database.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Migrate applies the schema.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

// Record inserts one event.  CreatedAt defaults to now when zero.
func (r *Repository) Record(ctx context.Context, ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	const q = `INSERT INTO auth_event
	    (user_id, kind, email, ip, country, browser, os, created_at)
	    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		ev.UserID, ev.Kind, ev.Email, ev.IP, ev.Country, ev.Browser, ev.OS, ev.CreatedAt)
	return err
}

// RecentForUser returns the newest events for one user, newest first.
func (r *Repository) RecentForUser(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `SELECT id, user_id, kind, email, ip, country, browser, os, created_at
	    FROM auth_event WHERE user_id = ?
	    ORDER BY created_at DESC LIMIT ?`

	out := make([]Event, 0, limit)
	if err := r.db.SelectContext(ctx, &out, q, userID, limit); err != nil {
		return nil, err
	}
	return out, nil
}
