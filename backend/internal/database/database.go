package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/sqlite"
	"vincit.fi/image-picker/common/logger"
)

type TableExist bool

const (
	TableExists   TableExist = true
	TableNotExist TableExist = false
)

type Database struct {
	session db.Session
	dbPath  string
}

func NewInMemoryDatabase() (*Database, error) {
	logger.Info.Printf("Initializing in-memory database")
	var settings = sqlite.ConnectionURL{
		Database: "memory.db",
		Options: map[string]string{
			"mode": "memory",
		},
	}

	session, err := sqlite.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	// Every pooled connection would get its own empty memory database.
	session.SetMaxOpenConns(1)

	return &Database{session: session, dbPath: ":memory:"}, nil
}

func NewDatabase(dbPath string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	logger.Info.Printf("Initializing database %s", dbPath)
	var settings = sqlite.ConnectionURL{
		Database: dbPath,
	}

	session, err := sqlite.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}

	var version map[string]interface{}
	if err := session.SQL().Select(db.Func("sqlite_version")).One(&version); err == nil {
		logger.Info.Printf("Database initialized. Using SQLite version %s", version["sqlite_version()"])
	}

	return &Database{session: session, dbPath: dbPath}, nil
}

func (s *Database) Migrate() (TableExist, error) {
	logger.Info.Printf("Running migrations")
	tablesExists := s.doesTablesExists()

	if !tablesExists {
		logger.Info.Print("Initial databases don't exist. Creating...")
		err := s.session.Tx(func(session db.Session) error {
			_, err := session.SQL().Exec(`
				CREATE TABLE migration (
					id INTEGER PRIMARY KEY
				)
			`)
			return err
		})
		if err != nil {
			return TableNotExist, fmt.Errorf("create migration table: %w", err)
		}
	}

	if err := s.migrate(); err != nil {
		return TableNotExist, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info.Print("All migrations done")

	if tablesExists {
		return TableExists, nil
	} else {
		return TableNotExist, nil
	}
}

func (s *Database) doesTablesExists() bool {
	rows, err := s.session.SQL().Query(`
		SELECT name FROM sqlite_master WHERE type='table' AND name= 'migration';
	`)

	if err != nil {
		return false
	}

	defer rows.Close()
	return rows.Next()
}

func (s *Database) Session() db.Session {
	return s.session
}

func (s *Database) migrate() error {
	return s.session.Tx(func(session db.Session) error {
		migrationStatusesById, err := s.findAlreadyRunMigrations(session)
		if err != nil {
			return err
		}
		for _, migration := range migrations {
			if err := s.runMigration(session, migration, migrationStatusesById); err != nil {
				logger.Error.Print("Failed to run migration ", err)
				return err
			}
		}
		return nil
	})
}

func (s *Database) runMigration(session db.Session, migration migration, migrationStatusesById map[MigrationId]bool) error {
	migrationId := migration.id

	if _, found := migrationStatusesById[migrationId]; found {
		logger.Debug.Printf("Migration %d is already done", migrationId)
		return nil
	}

	logger.Info.Printf("Running migration %d: %s", migrationId, migration.description)
	if _, err := session.SQL().Exec(`INSERT INTO migration (id) VALUES (?)`, migrationId); err != nil {
		return err
	}
	_, err := session.SQL().Exec(migration.query)
	return err
}

func (s *Database) findAlreadyRunMigrations(session db.Session) (map[MigrationId]bool, error) {
	var runMigrations []Migration
	if err := session.Collection("migration").Find().All(&runMigrations); err != nil {
		return nil, err
	}
	var migrationStatusesById = map[MigrationId]bool{}
	for _, migration := range runMigrations {
		migrationStatusesById[migration.Id] = true
	}
	return migrationStatusesById, nil
}

func (s *Database) Close() {
	logger.Info.Printf("Closing database %s", s.dbPath)
	if s.session != nil {
		if err := s.session.Close(); err != nil {
			logger.Error.Print("Error while trying to close database ", err)
		}
	} else {
		logger.Warn.Printf("No database instance to close")
	}
}
