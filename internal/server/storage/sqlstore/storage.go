// Package sqlstore реализует storage.Storage поверх sqlx.
// Поддерживаются драйверы sqlite (modernc.org/sqlite) и postgres (lib/pq);
// запросы пишутся с плейсхолдерами "?" и переписываются через Rebind.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// Поддерживаемые значения database.driver
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// goose хранит dialect, FS и logger в глобальных переменных
var migrateMu sync.Mutex

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Storage represents SQL storage implementation
type Storage struct {
	db     *sqlx.DB
	logger *zap.Logger
	driver string
}

// New opens the database, applies driver settings and runs migrations.
// For sqlite use ":memory:" for an in-memory database (useful for testing).
func New(ctx context.Context, logger *zap.Logger, driver, dsn string) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch driver {
	case DriverSQLite:
		dsn = withSQLiteTimeFormat(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	// Открываем соединение с БД
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db, driver: driver, logger: logger}

	if driver == DriverSQLite {
		if err := s.configureSQLite(ctx); err != nil {
			db.Close()
			return nil, err
		}
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	// Запускаем миграции
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// configureSQLite ограничивает пул одним соединением и включает нужные pragma.
// Одно соединение также держит :memory: базу живой между запросами.
func (s *Storage) configureSQLite(ctx context.Context) error {
	s.db.SetMaxOpenConns(1)
	s.db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return nil
}

// withSQLiteTimeFormat makes the driver write times in a form that sorts correctly as text
func withSQLiteTimeFormat(dsn string) string {
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_time_format=sqlite"
	}
	return dsn + "?_time_format=sqlite"
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations(ctx context.Context) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	dialect := "sqlite3"
	if s.driver == DriverPostgres {
		dialect = "postgres"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger: s.logger.Sugar()})

	if err := goose.UpContext(ctx, s.db.DB, "migrations/"+s.driver); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// gooseLogger направляет вывод миграций в zap
type gooseLogger struct {
	logger *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Infof(strings.TrimSpace(format), v...)
}

// Fatalf не завершает процесс: ошибка миграции и так вернется из UpContext
func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Errorf(strings.TrimSpace(format), v...)
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sqlx.DB {
	return s.db
}
