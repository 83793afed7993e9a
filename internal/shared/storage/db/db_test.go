package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nopStmt{}, nil }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nopTx{}, nil }
func (nopConn) Ping(ctx context.Context) error            { return nil }

type nopStmt struct{}

func (nopStmt) Close() error                                   { return nil }
func (nopStmt) NumInput() int                                  { return -1 }
func (nopStmt) Exec(args []driver.Value) (driver.Result, error) { return nopResult{}, nil }
func (nopStmt) Query(args []driver.Value) (driver.Rows, error)  { return nopRows{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopResult struct{}

func (nopResult) LastInsertId() (int64, error) { return 0, nil }
func (nopResult) RowsAffected() (int64, error) { return 0, nil }

type nopRows struct{}

func (nopRows) Columns() []string              { return []string{} }
func (nopRows) Close() error                   { return nil }
func (nopRows) Next(dest []driver.Value) error { return driver.ErrBadConn }

var registerTestDriverOnce sync.Once

func ensureTestDriverRegistered() {
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
}

func withTestDriver(t *testing.T) func() {
	t.Helper()
	ensureTestDriverRegistered()
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return sql.Open("dbtest", dsn)
	}
	return func() {
		openDB = prev
	}
}

func TestGetSingletonReturnsSamePointer(t *testing.T) {
	restore := withTestDriver(t)
	defer restore()

	resetSingleton(t)

	db1, err := GetSingleton(context.Background(), "ignored", DefaultOptions(ProfileLambda))
	if err != nil {
		t.Fatalf("GetSingleton first: %v", err)
	}
	db2, err := GetSingleton(context.Background(), "ignored", DefaultOptions(ProfileLambda))
	if err != nil {
		t.Fatalf("GetSingleton second: %v", err)
	}
	if db1 != db2 {
		t.Fatalf("expected singleton pointers to match")
	}
}

func resetSingleton(t *testing.T) {
	t.Helper()
	singletonMu.Lock()
	singletonDB = nil
	singletonMu.Unlock()
}

func TestOptionsFromLookupAppliesOverrides(t *testing.T) {
	restore := withTestDriver(t)
	defer restore()

	env := map[string]string{
		"DB_MAX_OPEN_CONNS":     "7",
		"DB_MAX_IDLE_CONNS":     "3",
		"DB_CONN_MAX_LIFETIME":  "20m",
		"DB_CONN_MAX_IDLE_TIME": "45s",
		"DB_PING_TIMEOUT":       "1s",
	}
	opts := OptionsFromLookup(DefaultOptions(ProfileServer), func(k string) string { return env[k] })
	db, err := Connect(context.Background(), "ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	if stats := db.Stats(); stats.MaxOpenConnections != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", stats.MaxOpenConnections)
	}
	want := Options{MaxOpenConns: 7, MaxIdleConns: 3, ConnMaxLifetime: 20 * time.Minute, ConnMaxIdleTime: 45 * time.Second, PingTimeout: time.Second}
	if opts != want {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestOptionsFromLookupIgnoresInvalidValues(t *testing.T) {
	env := map[string]string{"DB_MAX_OPEN_CONNS": "many", "DB_PING_TIMEOUT": "soon"}
	def := DefaultOptions(ProfileCLI)
	if got := OptionsFromLookup(def, func(k string) string { return env[k] }); got != def {
		t.Fatalf("invalid values must keep defaults, got %+v", got)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "4")
	if got := OptionsFromEnv(DefaultOptions(ProfileLambda)); got.MaxIdleConns != 4 || got.MaxOpenConns != 2 {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestRuntimeProfile(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	if RuntimeProfile() != ProfileServer {
		t.Fatalf("expected server profile outside lambda")
	}
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "resume-builder-http")
	if RuntimeProfile() != ProfileLambda {
		t.Fatalf("expected lambda profile")
	}
	if DefaultOptions(ProfileCLI).MaxOpenConns != 1 {
		t.Fatalf("cli profile should use a single connection")
	}
}

func TestGetSingletonRetriesAfterFailure(t *testing.T) {
	var calls int32
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, driver.ErrBadConn
		}
		ensureTestDriverRegistered()
		return sql.Open("dbtest", dsn)
	}
	defer func() {
		openDB = prev
	}()
	ensureTestDriverRegistered()

	resetSingleton(t)

	_, err := GetSingleton(context.Background(), "ignored", DefaultOptions(ProfileLambda))
	if err == nil {
		t.Fatalf("expected first call to fail")
	}
	db2, err := GetSingleton(context.Background(), "ignored", DefaultOptions(ProfileLambda))
	if err != nil {
		t.Fatalf("expected second call to succeed: %v", err)
	}
	if db2 == nil {
		t.Fatalf("expected db after retry")
	}
}

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	dir := t.TempDir()
	database, err := OpenSQLite(context.Background(), dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer database.Close()

	var name string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv_entries'`).Scan(&name)
	if err != nil {
		t.Fatalf("kv_entries missing: %v", err)
	}

	// Reopening an existing database is a no-op for migrations.
	again, err := OpenSQLite(context.Background(), dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again.Close()
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), " ", DefaultOptions(ProfileServer)); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}
