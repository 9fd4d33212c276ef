package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/config"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Connect opens the primary database named by the configuration and, when a
// replica host is configured, routes reads to it
func Connect(c map[string]string) (*gorm.DB, error) {
	dbType := config.GetString(c, "DB_TYPE", "")

	// Build connection string based on DB_TYPE
	var connStr, replicaConnStr string
	switch dbType {
	case "supa":
		connStr = supabaseDSN(c, config.GetString(c, "SUPABASE_DB_HOST", ""))
		if replica := config.GetString(c, "SUPABASE_DB_REPLICA_HOST", ""); replica != "" {
			replicaConnStr = supabaseDSN(c, replica)
		}
		zlog.Info().Str("dbType", dbType).Msg("Connecting to Supabase database")
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, err
	}

	if replicaConnStr != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replicaConnStr,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		zlog.Info().Msg("Reads are routed to the replica database")
	}

	// Enable required PostgreSQL extensions
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

func supabaseDSN(c map[string]string, host string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		host,
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
	)
}
