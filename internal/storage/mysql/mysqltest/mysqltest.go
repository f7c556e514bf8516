// Package mysqltest starts a throwaway MySQL container for integration tests
// and provides row factories for the catalog schema.
package mysqltest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// Start runs MySQL 8 in Docker, applies migrations and returns an open handle.
// The container is purged when the test finishes.
func Start(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=event_hotels",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/event_hotels?parseTime=true&multiStatements=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// migrationsDir honours MIGRATIONS_DIR and falls back to the repo's migrations/.
func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// Clean empties every table, children first.
func Clean(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"rooms", "hotels", "tickets", "ticket_types", "addresses", "enrollments", "sessions", "users"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
}

func insert(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("insert: %v\n%s", err, query)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

func CreateUser(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	return insert(t, db, `INSERT INTO users (email, password) VALUES (?, ?)`, email, "$2b$10$hash")
}

func CreateSession(t *testing.T, db *sql.DB, userID int64, token string) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO sessions (user_id, token) VALUES (?, ?)`, userID, token)
}

// CreateEnrollmentWithAddress creates an enrollment and its address; returns the enrollment id.
func CreateEnrollmentWithAddress(t *testing.T, db *sql.DB, userID int64) int64 {
	t.Helper()
	id := insert(t, db,
		`INSERT INTO enrollments (user_id, name, cpf, birthday, phone) VALUES (?, ?, ?, ?, ?)`,
		userID, "Maria Silva", "12345678909", time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC), "(21) 98999-9999")
	insert(t, db,
		`INSERT INTO addresses (enrollment_id, cep, street, city, state, number, neighborhood) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, "22250-040", "Rua Voluntarios da Patria", "Rio de Janeiro", "RJ", "42", "Botafogo")
	return id
}

func CreateTicketType(t *testing.T, db *sql.DB, isRemote, includesHotel bool) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO ticket_types (name, price, is_remote, includes_hotel) VALUES (?, ?, ?, ?)`,
		"Presencial", 600, isRemote, includesHotel)
}

func CreateTicket(t *testing.T, db *sql.DB, enrollmentID, ticketTypeID int64, status string) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO tickets (ticket_type_id, enrollment_id, status) VALUES (?, ?, ?)`,
		ticketTypeID, enrollmentID, status)
}

func CreateHotel(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO hotels (name, image) VALUES (?, ?)`, name, "https://img.example.com/"+name+".png")
}

func CreateRoom(t *testing.T, db *sql.DB, hotelID int64, name string, capacity int) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO rooms (name, capacity, hotel_id) VALUES (?, ?, ?)`, name, capacity, hotelID)
}
