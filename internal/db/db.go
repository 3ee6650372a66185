package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/types"
)

// Service wraps the gorm handle. Postgres serves deployments; sqlite
// serves local development and tests.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens a database connection for the given DSN. DSNs starting with
// "postgres://" or "postgresql://" use the postgres driver; everything
// else is treated as a sqlite path (":memory:" included).
func New(dsn string, baseLog *logger.Logger) (*Service, error) {
	log := baseLog.With("component", "db")

	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Service{db: gdb, log: log}, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn), nil
	}
	return sqlite.Open(dsn), nil
}

// DB returns the underlying gorm handle.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// AutoMigrateAll creates or updates the schema for every model.
func (s *Service) AutoMigrateAll() error {
	s.log.Info("running auto-migration")
	return s.db.AutoMigrate(
		&types.Book{},
		&types.Page{},
		&types.Quiz{},
		&types.ProviderCallLog{},
	)
}
