package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOneTimeCodeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE one_time_codes (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		code_hash TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createReminderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reminders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		date DATETIME,
		time TEXT,
		device TEXT,
		category TEXT,
		icon_image_url TEXT,
		status TEXT NOT NULL DEFAULT 'upcoming',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
