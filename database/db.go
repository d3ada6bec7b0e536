package database

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

func InitDB() {
	Open("./trim_quote.db")
}

// Open connects to the given sqlite database and prepares the schema.
// Tests point it at ":memory:".
func Open(path string) {
	var err error
	DB, err = sql.Open("sqlite3", path)
	if err != nil {
		log.Fatal(err)
	}
	if path == ":memory:" {
		// Each pooled connection gets its own in-memory database; keep one.
		DB.SetMaxOpenConns(1)
	}

	createTables()
	seedData()
}

func createTables() {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'ESTIMATOR'
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			cost_per_lf REAL DEFAULT 0,
			stock_width REAL DEFAULT 0,
			markup_percent REAL DEFAULT 0,
			price_per_bend REAL DEFAULT 0,
			cut_price REAL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS saved_configs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			bends INTEGER NOT NULL DEFAULT 0,
			created_by TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS saved_config_lengths (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			config_id INTEGER NOT NULL REFERENCES saved_configs(id),
			position INTEGER NOT NULL,
			inches REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS drawing_segments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			config_id INTEGER NOT NULL REFERENCES saved_configs(id),
			label TEXT NOT NULL,
			start_x REAL NOT NULL,
			start_y REAL NOT NULL,
			end_x REAL NOT NULL,
			end_y REAL NOT NULL,
			has_hem INTEGER NOT NULL DEFAULT 0,
			hem_at_start INTEGER NOT NULL DEFAULT 0
		);`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			log.Println("Error creating table:", err)
		}
	}
}

func seedData() {
	// Settings start all-zero: the calculator stays unconfigured and quotes
	// zeros until an admin enters real rates.
	DB.Exec("INSERT OR IGNORE INTO settings (id) VALUES (1)")

	var userCount int
	DB.QueryRow("SELECT count(*) FROM users").Scan(&userCount)
	if userCount == 0 {
		// Default credentials, meant to be changed on first login.
		admin, _ := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		estimator, _ := bcrypt.GenerateFromPassword([]byte("trimshop"), bcrypt.DefaultCost)
		DB.Exec("INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'ADMIN')", "admin", string(admin))
		DB.Exec("INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'ESTIMATOR')", "estimator", string(estimator))
	}
}
