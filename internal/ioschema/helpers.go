package ioschema

import (
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var indexTableRe = regexp.MustCompile(`(?i)\bON\s+([a-z_]+)\s*\(`)

// openGORM wraps the pgx pool into a GORM connection.
func openGORM(pool *pgxpool.Pool) (*gorm.DB, error) {
	db := stdlib.OpenDBFromPool(pool)
	return gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
}

// indexTable returns the table name of a CREATE INDEX statement.
func indexTable(stmt string) string {
	m := indexTableRe.FindStringSubmatch(stmt)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
